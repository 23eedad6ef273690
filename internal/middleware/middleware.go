package middleware

import "github.com/gin-gonic/gin"

// Middleware 全局中间件，作为第一个 Router 加载
type Middleware struct {
	language string
}

func NewMiddleware(language string) *Middleware {
	return &Middleware{language: language}
}

func (m *Middleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery(), RequestId(), Logger, Options(), Secure(), NoCache(), Language(m.language))
}

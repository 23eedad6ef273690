package i18n

var tables = map[string]map[string]string{
	English: {
		"nav.dashboard":   "DASHBOARD",
		"nav.research":    "RESEARCH",
		"nav.copytrading": "COPY TRADING",
		"nav.contact":     "CONTACT",

		"stats.apr":                  "ANNUAL PERCENTAGE RATE",
		"stats.apr.note":             "Projected from avg/mo",
		"stats.apr.note.projected":   "Projected from avg/mo",
		"stats.apr.note.unavailable": "Projection unavailable",
		"stats.capital":              "VAULT CAPITAL",
		"stats.followers":            "followers",
		"stats.return":               "TRADING RETURN",
		"stats.return.note":          "Pure PnL / Initial Capital",
		"stats.return.last_30d":      "last 30d",
		"stats.return.avg_mo":        "avg/mo",
		"stats.return.unavailable":   "Portfolio history unavailable",
		"stats.return.legacy":        "Estimated from follower equity",
		"stats.days":                 "DAYS ACTIVE",
		"stats.days.since":           "Since Oct 1, 2025",

		"live.note": "*Live data from HyperLiquid",

		"calc.title":      "🚀 Investment Time Machine",
		"calc.invested":   "If you had invested",
		"calc.since":      "Since vault inception on October 1st 2025",
		"calc.since_days": "Since vault inception on October 1st 2025 ({0} days ago)",
		"calc.days_ago":   "days ago",
		"calc.earned":     "You would have earned",
		"calc.return":     "return",
		"calc.note":       "Based on actual vault performance",
		"calc.month":      "/month",

		"proj.title":    "📊 Projected future profits (if performance continues):",
		"proj.1month":   "+1 MONTH",
		"proj.6months":  "+6 MONTHS",
		"proj.1year":    "+1 YEAR",
		"monthly.title": "Monthly returns",

		"trades.total": "All trades",
		"trades.long":  "Long",
		"trades.short": "Short",

		"cta.join": "JOIN THE COPY TRADING ON HYPERLIQUID",
		"footer":   "© Vice Algos are made with Love. All rights reserved.",
	},
	French: {
		"nav.dashboard":   "TABLEAU DE BORD",
		"nav.research":    "RECHERCHE",
		"nav.copytrading": "COPY TRADING",
		"nav.contact":     "CONTACT",

		"stats.apr":                  "TAUX DE RENDEMENT ANNUEL",
		"stats.apr.note":             "Projection basée sur la moyenne mensuelle",
		"stats.apr.note.projected":   "Projection basée sur la moyenne mensuelle",
		"stats.apr.note.unavailable": "Projection indisponible",
		"stats.capital":              "CAPITAL DU VAULT",
		"stats.followers":            "investisseurs",
		"stats.return":               "RENDEMENT TRADING",
		"stats.return.note":          "PnL Pur / Capital Initial",
		"stats.return.last_30d":      "30 derniers jours",
		"stats.return.avg_mo":        "moyenne/mois",
		"stats.return.unavailable":   "Historique du portefeuille indisponible",
		"stats.return.legacy":        "Estimation basée sur le capital des investisseurs",
		"stats.days":                 "JOURS ACTIFS",
		"stats.days.since":           "Depuis le 1er Oct 2025",

		"live.note": "*Données en direct de HyperLiquid",

		"calc.title":      "🚀 Machine à Remonter le Temps",
		"calc.invested":   "Si vous aviez investi",
		"calc.since":      "Depuis la création du portefeuille le 1er Octobre 2025",
		"calc.since_days": "Depuis la création du portefeuille le 1er Octobre 2025 ({0} jours)",
		"calc.days_ago":   "jours",
		"calc.earned":     "Vous auriez gagné",
		"calc.return":     "rendement",
		"calc.note":       "Basé sur la performance réelle du vault",
		"calc.month":      "/mois",

		"proj.title":    "📊 Profits futurs projetés (si la performance continue):",
		"proj.1month":   "+1 MOIS",
		"proj.6months":  "+6 MOIS",
		"proj.1year":    "+1 AN",
		"monthly.title": "Rendements mensuels",

		"trades.total": "Tous les trades",
		"trades.long":  "Long",
		"trades.short": "Short",

		"cta.join": "REJOIGNEZ LE COPY TRADING SUR HYPERLIQUID",
		// footer 保持英文
	},
}

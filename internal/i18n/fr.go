package i18n

// FrMessages 法语文案
// FrMessages French message catalog
var FrMessages = map[string]string{
	"panel.quotes": "Devis",
	"panel.draft":  "Brouillon",
	"panel.output": "Sortie",
	"panel.empty":  "Rien pour l'instant",

	"login.title":    "Se connecter ou créer un compte",
	"login.email":    "E-mail",
	"login.password": "Mot de passe",
	"login.name":     "Nom (facultatif)",
	"login.working":  "Connexion...",

	"status.ready":      "Prêt",
	"status.busy":       "En cours...",
	"status.signed_out": "Non connecté",

	"input.placeholder": "Saisissez une commande, par ex. /quotes ou /help",
	"prompt.hint":       "répondez puis entrée · échap annule",
	"key.panels":        "panneaux",
	"key.next_field":    "champ suivant",
	"key.prev_field":    "champ précédent",
	"key.continue":      "continuer",
	"key.run":           "exécuter",
	"key.reload":        "recharger",
	"key.quit":          "quitter",
	"key.cancel":        "annuler",
	"key.scroll_up":     "défiler vers le haut",
	"key.scroll_down":   "défiler vers le bas",
	"key.page_up":       "page précédente",
	"key.page_down":     "page suivante",

	"help.header":       "commandes :",
	"cmd.unknown":       "commande inconnue : %s (essayez /help)",
	"error.prefix":      "erreur : %s",
	"confirm.prompt":    "%s %s ? [o/N] : ",
	"confirm.cancelled": "annulé",

	"auth.required":   "non connecté ; utilisez /login <email> [nom]",
	"auth.password":   "Mot de passe : ",
	"auth.signed_in":  "connecté en tant que %s · %s",
	"auth.registered": "compte créé, connecté en tant que %s · %s",
	"auth.logged_out": "déconnecté",
	"auth.failed":     "échec de l'authentification",

	"lang.current":    "langue : %s",
	"lang.switched":   "langue changée : %s",
	"server.current":  "serveur : %s",
	"server.switched": "serveur changé : %s",

	"quotes.all":          "tous",
	"quotes.filter":       "filtre de statut : %s",
	"quotes.empty":        "aucun devis",
	"quote.submitted":     "devis %s envoyé",
	"quote.deleted":       "devis %s supprimé",
	"quote.not_found":     "devis %s introuvable ; lancez /quotes d'abord",
	"quote.no_share":      "le devis %s n'a pas de lien public",
	"draft.company":       "société : %s",
	"draft.preview_total": "total estimé : %s (le total du serveur fait foi)",
	"draft.item_added":    "ligne %d ajoutée",
	"draft.item_updated":  "ligne %d modifiée",
	"draft.item_removed":  "ligne %d supprimée",
	"draft.reset":         "brouillon réinitialisé",

	"col.company":    "Société",
	"col.status":     "Statut",
	"col.total":      "Total",
	"col.share":      "Partage",
	"col.item":       "Article",
	"col.price":      "Prix unitaire",
	"col.qty":        "Qté",
	"col.tax":        "TVA %",
	"col.line_total": "Total ligne",
	"col.name":       "Nom",
	"col.email":      "E-mail",
	"col.phone":      "Téléphone",
	"col.role":       "Rôle",
	"col.time":       "Heure",
	"col.action":     "Action",
	"col.target":     "Cible",
	"col.decision":   "Décision",

	"confirmations.empty": "aucune confirmation enregistrée",
	"decision.confirmed":  "confirmé",
	"decision.declined":   "refusé",

	"dashboard.counts":          "Clients %d · Devis %d · Tâches en attente %d",
	"dashboard.recent_contacts": "Contacts récents",
	"dashboard.recent_quotes":   "Devis récents",
	"dashboard.recent_tasks":    "Tâches récentes",

	"contacts.empty":         "aucun contact",
	"contacts.added":         "contact %s ajouté",
	"contacts.deleted":       "contact %s supprimé",
	"contacts.not_found":     "contact %s introuvable ; lancez /contacts d'abord",
	"contacts.name_required": "le nom du contact est obligatoire",

	"projects.empty":       "aucun projet",
	"projects.added":       "projet %s ajouté",
	"projects.not_found":   "projet %s introuvable ; lancez /projects d'abord",
	"tasks.added":          "tâche %s ajoutée",
	"tasks.moved":          "tâche %s déplacée vers %s",
	"tasks.not_found":      "tâche %s introuvable ; lancez /tasks d'abord",
	"tasks.title_required": "le titre de la tâche est obligatoire",
	"tasks.priority":       "Priorité %s",
	"tasks.empty_column":   "  (vide)",

	"settings.saved": "Enregistré",
	"settings.show":  "société : %s\nlangue : %s\nthème : %s",
	"users.empty":    "aucun utilisateur",
}

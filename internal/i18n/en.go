package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	"app.title": "SMB Suite",

	// UI (TUI) - Panel titles
	"panel.quotes": "Quotes",
	"panel.draft":  "Draft",
	"panel.output": "Output",
	"panel.empty":  "Nothing here yet",

	// UI - Login form
	"login.title":    "Sign in or create an account",
	"login.email":    "Email",
	"login.password": "Password",
	"login.name":     "Name (optional)",
	"login.working":  "Signing in...",

	// UI - Status bar
	"status.ready":      "Ready",
	"status.busy":       "Working...",
	"status.signed_out": "Not signed in",

	// UI - Input
	"input.placeholder": "Type a command, e.g. /quotes or /help",
	"prompt.hint":       "answer and press enter · esc cancels",
	"key.panels":        "panels",
	"key.next_field":    "next field",
	"key.prev_field":    "previous field",
	"key.continue":      "continue",
	"key.run":           "run",
	"key.reload":        "reload",
	"key.quit":          "quit",
	"key.cancel":        "cancel",
	"key.scroll_up":     "scroll up",
	"key.scroll_down":   "scroll down",
	"key.page_up":       "page up",
	"key.page_down":     "page down",

	// Commands
	"help.header":       "commands:",
	"cmd.unknown":       "unknown command: %s (try /help)",
	"error.prefix":      "error: %s",
	"confirm.prompt":    "%s %s? [y/N]: ",
	"confirm.cancelled": "cancelled",

	// Auth
	"auth.required":   "not logged in; use /login <email> [name]",
	"auth.password":   "Password: ",
	"auth.signed_in":  "signed in as %s · %s",
	"auth.registered": "registered and signed in as %s · %s",
	"auth.logged_out": "logged out",
	"auth.whoami":     "%s · %s",
	"auth.failed":     "authentication failed",

	"lang.current":    "language: %s",
	"lang.switched":   "language switched to %s",
	"server.current":  "server: %s",
	"server.switched": "server switched to %s",

	// Quotes
	"quotes.all":          "all",
	"quotes.filter":       "status filter: %s",
	"quotes.empty":        "no quotes",
	"quote.submitted":     "quote %s submitted",
	"quote.deleted":       "quote %s deleted",
	"quote.not_found":     "no quote %s; run /quotes first",
	"quote.no_share":      "quote %s has no public link",
	"draft.company":       "company: %s",
	"draft.preview_total": "preview total: %s (the server total is authoritative)",
	"draft.item_added":    "item %d added",
	"draft.item_updated":  "item %d updated",
	"draft.item_removed":  "item %d removed",
	"draft.reset":         "draft reset",

	// Table columns
	"col.company":    "Company",
	"col.status":     "Status",
	"col.total":      "Total",
	"col.share":      "Share",
	"col.item":       "Item",
	"col.price":      "Unit Price",
	"col.qty":        "Qty",
	"col.tax":        "Tax %",
	"col.line_total": "Line Total",
	"col.name":       "Name",
	"col.email":      "Email",
	"col.phone":      "Phone",
	"col.role":       "Role",
	"col.time":       "Time",
	"col.action":     "Action",
	"col.target":     "Target",
	"col.decision":   "Decision",

	"confirmations.empty": "no confirmations recorded",
	"decision.confirmed":  "confirmed",
	"decision.declined":   "declined",

	// Dashboard
	"dashboard.counts":          "Clients %d · Quotes %d · Tasks Pending %d",
	"dashboard.recent_contacts": "Recent contacts",
	"dashboard.recent_quotes":   "Recent quotes",
	"dashboard.recent_tasks":    "Recent tasks",

	// CRM
	"contacts.empty":         "no contacts",
	"contacts.added":         "contact %s added",
	"contacts.deleted":       "contact %s deleted",
	"contacts.not_found":     "no contact %s; run /contacts first",
	"contacts.name_required": "contact name is required",

	// Projects
	"projects.empty":       "no projects",
	"projects.added":       "project %s added",
	"projects.not_found":   "no project %s; run /projects first",
	"tasks.added":          "task %s added",
	"tasks.moved":          "task %s moved to %s",
	"tasks.not_found":      "no task %s; run /tasks first",
	"tasks.title_required": "task title is required",
	"tasks.priority":       "Priority %s",
	"tasks.empty_column":   "  (empty)",

	// Settings
	"settings.saved": "Saved",
	"settings.show":  "company: %s\nlanguage: %s\ntheme: %s",
	"users.empty":    "no users",
}

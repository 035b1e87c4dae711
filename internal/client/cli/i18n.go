package cli

import "github.com/agrismart/agrismart-cli/internal/client/prefs"

// labels holds the bilingual UI strings, keyed by label then language.
// Missing translations fall back to English so no prompt ever renders blank.
var labels = map[string]map[string]string{
	"welcome": {
		prefs.LangEnglish: "Welcome to AgriSmart (type 'help' for commands)",
		prefs.LangHindi:   "AgriSmart में आपका स्वागत है ('help' टाइप करें)",
	},
	"redirected_login": {
		prefs.LangEnglish: "Please login first.",
		prefs.LangHindi:   "कृपया पहले लॉगिन करें।",
	},
	"enter_name": {
		prefs.LangEnglish: "Enter your name",
		prefs.LangHindi:   "अपना नाम दर्ज करें",
	},
	"enter_email": {
		prefs.LangEnglish: "Enter email",
		prefs.LangHindi:   "ईमेल दर्ज करें",
	},
	"enter_password": {
		prefs.LangEnglish: "Enter password: ",
		prefs.LangHindi:   "पासवर्ड दर्ज करें: ",
	},
	"confirm_password": {
		prefs.LangEnglish: "Confirm password: ",
		prefs.LangHindi:   "पासवर्ड की पुष्टि करें: ",
	},
	"passwords_mismatch": {
		prefs.LangEnglish: "Passwords do not match.",
		prefs.LangHindi:   "पासवर्ड मेल नहीं खाते।",
	},
	"login_success": {
		prefs.LangEnglish: "Login successful!",
		prefs.LangHindi:   "लॉगिन सफल!",
	},
	"register_success": {
		prefs.LangEnglish: "Registration successful!",
		prefs.LangHindi:   "पंजीकरण सफल!",
	},
	"logged_out": {
		prefs.LangEnglish: "Logged out.",
		prefs.LangHindi:   "लॉगआउट हो गया।",
	},
	"server_unreachable": {
		prefs.LangEnglish: "Server unreachable, showing offline data.",
		prefs.LangHindi:   "सर्वर उपलब्ध नहीं है, ऑफ़लाइन डेटा दिखाया जा रहा है।",
	},
	"ask_question": {
		prefs.LangEnglish: "Ask your farming question",
		prefs.LangHindi:   "अपना कृषि प्रश्न पूछें",
	},
	"empty_question": {
		prefs.LangEnglish: "Question cannot be empty.",
		prefs.LangHindi:   "प्रश्न खाली नहीं हो सकता।",
	},
	"joined_room": {
		prefs.LangEnglish: "Joined room",
		prefs.LangHindi:   "रूम में शामिल हुए",
	},
	"left_room": {
		prefs.LangEnglish: "Left room",
		prefs.LangHindi:   "रूम छोड़ दिया",
	},
	"typing": {
		prefs.LangEnglish: "is typing...",
		prefs.LangHindi:   "टाइप कर रहे हैं...",
	},
	"bye": {
		prefs.LangEnglish: "Bye!",
		prefs.LangHindi:   "अलविदा!",
	},
}

// tr resolves a label in the active language.
func (a *App) tr(key string) string {
	byLang, ok := labels[key]
	if !ok {
		return key
	}
	if s, ok := byLang[a.prefs.Language()]; ok {
		return s
	}
	return byLang[prefs.LangEnglish]
}

package api

import (
	"math/rand"

	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/client/prefs"
)

// Fallback provides the placeholder content views substitute when a request
// fails transiently, so the UI stays usable offline. One provider per
// process; views consult it instead of scattering literals.
type Fallback struct {
	// pick selects an index in [0,n); a seam for deterministic tests.
	pick func(n int) int
}

func NewFallback() *Fallback {
	return &Fallback{pick: rand.Intn}
}

// Weather returns the same degraded payload the backend serves when its
// provider is unreachable.
func (f *Fallback) Weather(location string) models.WeatherReport {
	return models.WeatherReport{
		Current: models.WeatherCurrent{
			Temp:      28,
			FeelsLike: 30,
			Humidity:  65,
			Weather:   []models.WeatherCondition{{Main: "Clear", Description: "clear sky"}},
			Wind: struct {
				Speed float64 `json:"speed"`
			}{Speed: 3.5},
			Name: location,
		},
	}
}

var cannedAnswers = map[string][]string{
	prefs.LangEnglish: {
		"Based on your query, I recommend using organic fertilizers for better soil health.",
		"For this season, consider planting wheat or mustard depending on your soil type.",
		"Regular irrigation is crucial. I suggest drip irrigation for water efficiency.",
		"Monitor your crops for pest attacks. Use neem-based pesticides for organic farming.",
	},
	prefs.LangHindi: {
		"आपके प्रश्न के आधार पर, मैं बेहतर मिट्टी स्वास्थ्य के लिए जैविक उर्वरकों का उपयोग करने की सलाह देता हूं।",
		"इस मौसम के लिए, अपनी मिट्टी के प्रकार के आधार पर गेहूं या सरसों लगाने पर विचार करें।",
		"नियमित सिंचाई महत्वपूर्ण है। मैं पानी की दक्षता के लिए ड्रिप सिंचाई का सुझाव देता हूं।",
	},
}

// Answer returns a canned assistant reply in the requested language.
func (f *Fallback) Answer(language string) string {
	answers, ok := cannedAnswers[language]
	if !ok {
		answers = cannedAnswers[prefs.LangEnglish]
	}
	return answers[f.pick(len(answers))]
}

// RoomSeed returns the starter messages shown while a room's live history
// is empty or the transport is down.
func (f *Fallback) RoomSeed(room string) []models.Message {
	return []models.Message{
		{
			UserID:   1,
			Username: "Ramesh Kumar",
			Body:     "Hello everyone! Anyone knows about wheat disease prevention?",
			Room:     room,
		},
		{
			UserID:   2,
			Username: "Suresh Patel",
			Body:     "Use neem-based pesticides. They work great!",
			Room:     room,
		},
	}
}

// Tips returns placeholder knowledge-hub articles.
func (f *Fallback) Tips(language string) []models.Tip {
	hi := language == prefs.LangHindi
	pickTitle := func(en, h string) string {
		if hi {
			return h
		}
		return en
	}
	return []models.Tip{
		{
			ID:         1,
			Title:      pickTitle("Organic Fertilizer Benefits", "जैविक खाद के लाभ"),
			Category:   "Soil Management",
			Content:    pickTitle("Organic fertilizers improve soil structure, increase water retention, and provide slow-release nutrients. Use compost, vermicompost, or green manure for best results.", "जैविक उर्वरक मिट्टी की संरचना में सुधार करते हैं, पानी की अवधारण बढ़ाते हैं और धीमी गति से पोषक तत्व प्रदान करते हैं।"),
			AuthorName: "Dr. Sharma",
			Views:      245,
			Likes:      67,
			Tags:       "organic,fertilizer,soil",
		},
		{
			ID:         2,
			Title:      pickTitle("Pest Control Using Neem", "नीम से कीट नियंत्रण"),
			Category:   "Pest Management",
			Content:    pickTitle("Neem-based pesticides are effective against 200+ pest species. Mix neem oil with water (1:20 ratio) and spray on crops every 7-10 days.", "नीम आधारित कीटनाशक 200+ कीट प्रजातियों के खिलाफ प्रभावी हैं। नीम के तेल को पानी के साथ मिलाएं और हर 7-10 दिनों में फसलों पर छिड़काव करें।"),
			AuthorName: "Ramesh Kumar",
			Views:      567,
			Likes:      123,
			Tags:       "pest,neem,organic",
		},
		{
			ID:         3,
			Title:      pickTitle("Drip Irrigation Setup", "ड्रिप सिंचाई सेटअप"),
			Category:   "Irrigation",
			Content:    pickTitle("Drip irrigation saves 40-60% water. Install drippers 30cm apart for vegetables and 60cm for fruit crops. Check filters weekly.", "ड्रिप सिंचाई 40-60% पानी बचाती है। सब्जियों के लिए 30 सेमी की दूरी पर और फल फसलों के लिए 60 सेमी पर ड्रिपर लगाएं।"),
			AuthorName: "Suresh Patel",
			Views:      432,
			Likes:      98,
			Tags:       "irrigation,water,drip",
		},
	}
}

// Products returns placeholder marketplace listings.
func (f *Fallback) Products() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Organic Wheat", Category: "Grains", Price: 35, Unit: "kg", IsOrganic: 1, SellerName: "Ram Kumar"},
		{ID: 2, Name: "Fresh Tomatoes", Category: "Vegetables", Price: 30, Unit: "kg", IsOrganic: 1, SellerName: "Suresh Patel"},
		{ID: 3, Name: "Basmati Rice", Category: "Grains", Price: 80, Unit: "kg", SellerName: "Amit Sharma"},
		{ID: 4, Name: "Green Chillies", Category: "Vegetables", Price: 40, Unit: "kg", IsOrganic: 1, SellerName: "Vijay Singh"},
		{ID: 5, Name: "Organic Milk", Category: "Dairy", Price: 60, Unit: "liter", IsOrganic: 1, SellerName: "Krishna Dairy"},
		{ID: 6, Name: "Vermicompost", Category: "Fertilizers", Price: 8, Unit: "kg", IsOrganic: 1, SellerName: "Green Earth"},
	}
}

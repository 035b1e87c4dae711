package models

// WeatherCondition mirrors the OpenWeather condition entry.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// WeatherCurrent holds current conditions. The upstream provider nests
// readings under "main"; the backend's degraded-mode payload flattens them.
// TempC/FeelsLikeC/HumidityPct read whichever form arrived.
type WeatherCurrent struct {
	Temp      float64            `json:"temp"`
	FeelsLike float64            `json:"feels_like"`
	Humidity  float64            `json:"humidity"`
	Weather   []WeatherCondition `json:"weather"`
	Wind      struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main,omitempty"`
	Name string `json:"name,omitempty"`
}

func (w WeatherCurrent) TempC() float64 {
	if w.Main != nil {
		return w.Main.Temp
	}
	return w.Temp
}

func (w WeatherCurrent) FeelsLikeC() float64 {
	if w.Main != nil {
		return w.Main.FeelsLike
	}
	return w.FeelsLike
}

func (w WeatherCurrent) HumidityPct() float64 {
	if w.Main != nil {
		return w.Main.Humidity
	}
	return w.Humidity
}

// Condition returns the primary condition description, if any.
func (w WeatherCurrent) Condition() string {
	if len(w.Weather) == 0 {
		return ""
	}
	if w.Weather[0].Description != "" {
		return w.Weather[0].Description
	}
	return w.Weather[0].Main
}

// WeatherForecast is the forecast list as returned by the provider.
type WeatherForecast struct {
	List []WeatherCurrent `json:"list"`
}

// WeatherReport is the backend's combined weather response.
type WeatherReport struct {
	Current  WeatherCurrent  `json:"current"`
	Forecast WeatherForecast `json:"forecast"`
}

// Detection is the disease classification result for an uploaded image.
type Detection struct {
	ID                 int64   `json:"id,omitempty"`
	Disease            string  `json:"disease"`
	Confidence         float64 `json:"confidence"`
	Treatment          string  `json:"treatment"`
	PreventiveMeasures string  `json:"preventive_measures"`
	Image              string  `json:"image,omitempty"`
}

// DetectionRecord is a past detection from the history endpoint.
type DetectionRecord struct {
	ID          int64   `json:"id"`
	DiseaseName string  `json:"disease_name"`
	Confidence  float64 `json:"confidence"`
	CreatedAt   string  `json:"created_at"`
}

// DashboardStats are the per-user activity counters.
type DashboardStats struct {
	DiseaseScans    int64 `json:"disease_scans"`
	IrrigationPlans int64 `json:"irrigation_plans"`
	ProductsListed  int64 `json:"products_listed"`
	AIChats         int64 `json:"ai_chats"`
}

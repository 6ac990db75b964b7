package geocode

// City is a reference coordinate for location-picker UIs
type City struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AfricanCities returns the static West/Central African reference list used
// by school and safe-zone pickers
func AfricanCities() []City {
	return []City{
		{Name: "Yaoundé", Country: "Cameroon", Latitude: 3.8480, Longitude: 11.5021},
		{Name: "Douala", Country: "Cameroon", Latitude: 4.0511, Longitude: 9.7679},
		{Name: "Bafoussam", Country: "Cameroon", Latitude: 5.4781, Longitude: 10.4179},
		{Name: "Bamenda", Country: "Cameroon", Latitude: 5.9631, Longitude: 10.1591},
		{Name: "Garoua", Country: "Cameroon", Latitude: 9.3265, Longitude: 13.3958},
		{Name: "Dakar", Country: "Senegal", Latitude: 14.7167, Longitude: -17.4677},
		{Name: "Abidjan", Country: "Côte d'Ivoire", Latitude: 5.3600, Longitude: -4.0083},
		{Name: "Accra", Country: "Ghana", Latitude: 5.6037, Longitude: -0.1870},
		{Name: "Lagos", Country: "Nigeria", Latitude: 6.5244, Longitude: 3.3792},
		{Name: "Abuja", Country: "Nigeria", Latitude: 9.0765, Longitude: 7.3986},
		{Name: "Cotonou", Country: "Benin", Latitude: 6.3703, Longitude: 2.3912},
		{Name: "Lomé", Country: "Togo", Latitude: 6.1256, Longitude: 1.2254},
		{Name: "Ouagadougou", Country: "Burkina Faso", Latitude: 12.3714, Longitude: -1.5197},
		{Name: "Bamako", Country: "Mali", Latitude: 12.6392, Longitude: -8.0029},
		{Name: "Conakry", Country: "Guinea", Latitude: 9.6412, Longitude: -13.5784},
		{Name: "Libreville", Country: "Gabon", Latitude: 0.4162, Longitude: 9.4673},
		{Name: "Brazzaville", Country: "Congo", Latitude: -4.2634, Longitude: 15.2429},
		{Name: "Kinshasa", Country: "DR Congo", Latitude: -4.4419, Longitude: 15.2663},
		{Name: "Bangui", Country: "Central African Republic", Latitude: 4.3947, Longitude: 18.5582},
		{Name: "N'Djamena", Country: "Chad", Latitude: 12.1348, Longitude: 15.0557},
		{Name: "Niamey", Country: "Niger", Latitude: 13.5116, Longitude: 2.1254},
		{Name: "Malabo", Country: "Equatorial Guinea", Latitude: 3.7504, Longitude: 8.7371},
	}
}

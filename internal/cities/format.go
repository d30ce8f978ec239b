package cities

var countryNames = map[string]string{
	"US": "United States", "CA": "Canada", "GB": "United Kingdom", "AU": "Australia",
	"DE": "Germany", "FR": "France", "IT": "Italy", "ES": "Spain",
	"NL": "Netherlands", "BE": "Belgium", "CH": "Switzerland", "AT": "Austria",
	"SE": "Sweden", "NO": "Norway", "DK": "Denmark", "FI": "Finland",
	"PL": "Poland", "CZ": "Czech Republic", "HU": "Hungary", "PT": "Portugal",
	"IE": "Ireland", "GR": "Greece", "TR": "Turkey", "RU": "Russia",
	"JP": "Japan", "KR": "South Korea", "CN": "China", "IN": "India",
	"TH": "Thailand", "ID": "Indonesia", "PH": "Philippines", "SG": "Singapore",
	"MY": "Malaysia", "VN": "Vietnam", "AE": "UAE", "SA": "Saudi Arabia",
	"EG": "Egypt", "NG": "Nigeria", "ZA": "South Africa", "BR": "Brazil",
	"AR": "Argentina", "MX": "Mexico", "CL": "Chile", "CO": "Colombia",
	"PE": "Peru",
}

var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District of Columbia",
}

var caProvinces = map[string]string{
	"AB": "Alberta", "BC": "British Columbia", "MB": "Manitoba", "NB": "New Brunswick",
	"NL": "Newfoundland and Labrador", "NS": "Nova Scotia", "NT": "Northwest Territories",
	"NU": "Nunavut", "ON": "Ontario", "PE": "Prince Edward Island", "QC": "Quebec",
	"SK": "Saskatchewan", "YT": "Yukon",
}

// CountryName expands an ISO country code; unknown codes are returned as is.
func CountryName(code string) string {
	if n, ok := countryNames[code]; ok {
		return n
	}
	return code
}

// StateName expands US state and Canadian province codes.
func StateName(country, admin1 string) string {
	var m map[string]string
	switch country {
	case "US":
		m = usStates
	case "CA":
		m = caProvinces
	default:
		return admin1
	}
	if n, ok := m[admin1]; ok {
		return n
	}
	return admin1
}

// Format renders "Name, State, Country", omitting the state when unknown.
func Format(c City) string {
	s := c.Name
	if c.Admin1 != "" {
		s += ", " + StateName(c.Country, c.Admin1)
	}
	return s + ", " + CountryName(c.Country)
}

package astro

// DefaultCompatibility is returned for pairs outside the table.
const DefaultCompatibility = 50

// compatibility holds the product's fixed pairing scores. Rows and columns
// follow Signs order. The table is intentionally not forced to be
// symmetric; values are preserved exactly.
var compatibility = [12][12]int{
	//  Ari Tau Gem Can Leo Vir Lib Sco Sag Cap Aqu Pis
	{75, 60, 85, 55, 90, 65, 80, 70, 95, 50, 85, 60}, // Aries
	{60, 80, 55, 85, 65, 90, 70, 75, 50, 95, 55, 80}, // Taurus
	{85, 55, 70, 60, 80, 65, 95, 55, 85, 60, 90, 65}, // Gemini
	{55, 85, 60, 75, 70, 80, 65, 95, 55, 75, 60, 90}, // Cancer
	{90, 65, 80, 70, 75, 60, 85, 65, 90, 55, 80, 70}, // Leo
	{65, 90, 65, 80, 60, 75, 70, 80, 60, 85, 65, 75}, // Virgo
	{80, 70, 95, 65, 85, 70, 75, 70, 80, 65, 90, 75}, // Libra
	{70, 75, 55, 95, 65, 80, 70, 80, 60, 75, 65, 85}, // Scorpio
	{95, 50, 85, 55, 90, 60, 80, 60, 75, 55, 85, 65}, // Sagittarius
	{50, 95, 60, 75, 55, 85, 65, 75, 55, 80, 60, 70}, // Capricorn
	{85, 55, 90, 60, 80, 65, 90, 65, 85, 60, 75, 70}, // Aquarius
	{60, 80, 65, 90, 70, 75, 75, 85, 65, 70, 70, 80}, // Pisces
}

// Compatibility returns the table score for the ordered pair (a, b), in
// [0,100]. Unknown signs score DefaultCompatibility.
func Compatibility(a, b Sign) int {
	i, j := a.Index(), b.Index()
	if i < 0 || j < 0 {
		return DefaultCompatibility
	}
	return compatibility[i][j]
}

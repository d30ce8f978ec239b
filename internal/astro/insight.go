package astro

const fallbackInsight = "The stars have special plans for you."

var insights = map[Sign]string{
	Aries:       "Bold and pioneering, you lead with passion and courage. Your fiery spirit ignites inspiration in others.",
	Taurus:      "Grounded and reliable, you bring stability and beauty to everything you touch. Your patience is your superpower.",
	Gemini:      "Curious and adaptable, your mind sparkles with endless possibilities. Communication is your gift to the world.",
	Cancer:      "Nurturing and intuitive, you feel deeply and care profoundly. Your emotional wisdom guides others home.",
	Leo:         "Radiant and generous, you shine your light on everyone around you. Your creativity knows no bounds.",
	Virgo:       "Precise and thoughtful, you perfect the art of service. Your attention to detail creates lasting beauty.",
	Libra:       "Harmonious and diplomatic, you bring balance to chaos. Your sense of justice creates a better world.",
	Scorpio:     "Intense and transformative, you dive deep into life's mysteries. Your passion transforms everything you touch.",
	Sagittarius: "Adventurous and philosophical, you explore both worlds and ideas. Your optimism lights the way forward.",
	Capricorn:   "Ambitious and disciplined, you build lasting legacies. Your determination conquers any mountain.",
	Aquarius:    "Innovative and humanitarian, you envision the future. Your uniqueness is exactly what the world needs.",
	Pisces:      "Compassionate and intuitive, you flow with life's currents. Your empathy heals the world around you.",
}

// Insight returns the one-line personality blurb shown after onboarding.
func Insight(s Sign) string {
	if v, ok := insights[s]; ok {
		return v
	}
	return fallbackInsight
}

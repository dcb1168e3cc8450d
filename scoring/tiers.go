package scoring

// Tier is a discrete band over a score, with presentation hints and the
// guidance text shown alongside it. Color and icon are hints only; rendering
// belongs to the caller.
type Tier struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Guidance string `json:"guidance"`
}

// RiskTier maps a 0-100 risk score to its band. The lookup table is
// calibrated to the 0-10 scale, so scores are divided by 10 first; a score
// of exactly 70 lands in Critical Risk.
func RiskTier(score float64) Tier {
	s := score / 10
	switch {
	case s >= 7.0:
		return Tier{
			Label:    "Critical Risk",
			Color:    "#dc3545",
			Icon:     "alert",
			Guidance: "Consider speaking with a mental health professional. Practice stress-reduction techniques and ensure adequate rest and self-care.",
		}
	case s >= 5.0:
		return Tier{
			Label:    "High Risk",
			Color:    "#fd7e14",
			Icon:     "bolt",
			Guidance: "Elevated negative affect detected. Reach out to someone you trust and prioritize rest.",
		}
	case s >= 3.0:
		return Tier{
			Label:    "Moderate Risk",
			Color:    "#ffc107",
			Icon:     "caution",
			Guidance: "Monitor your emotional state. Engage in relaxing activities and connect with friends or family.",
		}
	case s >= 1.0:
		return Tier{
			Label:    "Low Risk",
			Color:    "#20c997",
			Icon:     "info",
			Guidance: "Keep tracking your emotions and maintain your routines.",
		}
	default:
		return Tier{
			Label:    "Minimal Risk",
			Color:    "#28a745",
			Icon:     "check",
			Guidance: "Maintain your positive habits and continue self-care practices.",
		}
	}
}

// WellnessTier maps a 0-100 wellness score to its band, rescaling the same
// way as RiskTier.
func WellnessTier(score float64) Tier {
	s := score / 10
	switch {
	case s >= 8.0:
		return Tier{Label: "Excellent", Color: "#28a745", Icon: "smile", Guidance: "Keep up the great work! Your mental wellness is strong."}
	case s >= 6.0:
		return Tier{Label: "Good", Color: "#20c997", Icon: "slight-smile", Guidance: "Your wellness is in good shape. Keep doing what works for you."}
	case s >= 4.0:
		return Tier{Label: "Fair", Color: "#ffc107", Icon: "neutral-face", Guidance: "Your wellness is in the moderate range. Some areas may need attention."}
	case s >= 2.0:
		return Tier{Label: "Poor", Color: "#fd7e14", Icon: "worried", Guidance: "Your wellness indicators are low. Consider reaching out for support."}
	default:
		return Tier{Label: "Critical", Color: "#dc3545", Icon: "cry", Guidance: "Your wellness indicators are very low. We recommend consulting a professional."}
	}
}

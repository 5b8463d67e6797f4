// Package hazard maps the upstream hazard flag to a display classification.
package hazard

// Color keys used by renderers.
const (
	ColorHazard = "hazard"
	ColorSafe   = "safe"
)

const (
	hazardousExplanation = "This asteroid is classified as potentially hazardous because its orbit " +
		"crosses near Earth's path (less than 7.5 million km) and its size or velocity could " +
		"cause significant impact effects if it entered the atmosphere."
	safeExplanation = "This asteroid is considered non-hazardous because its orbit remains safely " +
		"distant from Earth or its size is too small to cause major damage."
)

// Classification is the display treatment for one asteroid.
type Classification struct {
	Hazardous   bool   `json:"hazardous"`
	ColorKey    string `json:"color_key"`
	Explanation string `json:"explanation"`
}

// Classify returns the classification for the upstream flag. The flag is
// trusted as given; distance and size are never re-evaluated here.
func Classify(hazardous bool) Classification {
	if hazardous {
		return Classification{Hazardous: true, ColorKey: ColorHazard, Explanation: hazardousExplanation}
	}
	return Classification{ColorKey: ColorSafe, Explanation: safeExplanation}
}

// Label returns a short status word for tables.
func (c Classification) Label() string {
	if c.Hazardous {
		return "HAZARDOUS"
	}
	return "safe"
}

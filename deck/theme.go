package deck

// XML namespaces used in presentation parts.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// EMU conversions. OOXML positions everything in English Metric Units.
const (
	emuPerInch  = 914400
	emuPerPoint = 12700
)

func inches(v float64) int64 { return int64(v * emuPerInch) }
func points(v float64) int64 { return int64(v * emuPerPoint) }

// Slide geometry: 13.33" x 7.5" widescreen.
const (
	slideWidthEMU  = 12192000
	slideHeightEMU = 6858000
)

// Theme colors, RRGGBB.
const (
	colorBackground  = "0F172A" // deep navy
	colorAccentA     = "358EF1" // bright blue
	colorAccentB     = "7C3AED" // purple
	colorWhite       = "FFFFFF"
	colorLightGray   = "D0D8E8"
	colorBulletPanel = "1A2745" // slightly lighter navy
	colorTagline     = "92BCF5"
)

// MaxBullets is the hard cap on rendered bullets per content slide.
// Extra bullets are dropped, first MaxBullets kept, never an error.
const MaxBullets = 5

// AccentForSlot returns the accent color for a 1-based content slot
// number. Odd slots use accent A, even slots accent B.
func AccentForSlot(slot int) string {
	if slot%2 == 1 {
		return colorAccentA
	}
	return colorAccentB
}

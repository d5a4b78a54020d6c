// internal/calculator/units.go
package calculator

const (
	kgPerLb   = 0.453592
	cmPerInch = 2.54
)

func LbsToKg(lbs float64) float64 { return lbs * kgPerLb }

func KgToLbs(kg float64) float64 { return kg / kgPerLb }

func InchesToCm(in float64) float64 { return in * cmPerInch }

func CmToInches(cm float64) float64 { return cm / cmPerInch }

// FeetInchesToCm converts a 5'10" style height.
func FeetInchesToCm(feet, inches int) float64 {
	return InchesToCm(float64(feet*12 + inches))
}

package similarity

import (
	"strconv"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/task"
)

// Thresholds are the calibrated cut-offs above which two units are related.
type Thresholds struct {
	Phone   map[string]float64         // by letter
	Biphone float64                    // shared-biphone scores are 0 or 1
	LSA     map[string]map[int]float64 // by category, then dimensionality
}

// DefaultThresholds returns the published calibration tables.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Phone: map[string]float64{
			"a": 0.222222222222, "b": 0.3, "c": 0.2857142857134, "d": 0.3,
			"e": 0.25, "f": 0.333333333333, "g": 0.2857142857142857, "h": 0.333333333333,
			"i": 0.3, "j": 0.3, "k": 0.3, "l": 0.333333333333,
			"m": 0.333333333333, "n": 0.2857142857142857, "o": 0.222222222222, "p": 0.2857142857134,
			"q": 0.4285714285714286, "r": 0.3, "s": 0.2857142857134, "t": 0.2857142857134,
			"u": 0.3076923076923077, "v": 0.333333333333, "w": 0.333333333333, "x": 0.2857142857134,
			"y": 0.333333333333, "z": 0.333333333333,
		},
		Biphone: 1,
		LSA: map[string]map[int]float64{
			"animals": {
				50: 0.229306542684, 51: 0.225946872032, 52: 0.224032352058, 53: 0.214750475853,
				54: 0.210178113675, 55: 0.209214667474, 56: 0.204037629443, 57: 0.203801260742,
				58: 0.203261303516, 59: 0.20351336453, 60: 0.19834361416, 61: 0.19752806853,
				62: 0.191322450624, 63: 0.194312302459, 64: 0.188165419858, 65: 0.184645454503,
				66: 0.184781367314, 67: 0.178950849271, 68: 0.177441756062, 69: 0.176398889963,
				70: 0.175374032744, 71: 0.172350911698, 72: 0.171158753965, 73: 0.172621416351,
				74: 0.165803036975, 75: 0.164168434928, 76: 0.166395146381, 77: 0.162961462955,
				78: 0.161888890545, 79: 0.160416925579, 80: 0.157132807023, 81: 0.159653951557,
				82: 0.155974588379, 83: 0.156068321827, 84: 0.149922400199, 85: 0.151864625954,
				86: 0.149766386146, 87: 0.149423885352, 88: 0.14740916275, 89: 0.148213369526,
				90: 0.141889414227, 91: 0.140395152983, 92: 0.141251008272, 93: 0.140135804694,
				94: 0.139334834651, 95: 0.139679588617, 96: 0.135698594642, 97: 0.135394351192,
				98: 0.136194738818, 99: 0.136671316751, 100: 0.135307208304,
			},
		},
	}
}

// Override replaces table entries. Phone keys are letters; LSA keys are
// category then dimensionality as a decimal string.
func (th Thresholds) Override(phone map[string]float64, lsa map[string]map[string]float64) (Thresholds, error) {
	out := Thresholds{Biphone: th.Biphone, Phone: map[string]float64{}, LSA: map[string]map[int]float64{}}
	for k, v := range th.Phone {
		out.Phone[k] = v
	}
	for cat, dims := range th.LSA {
		out.LSA[cat] = map[int]float64{}
		for d, v := range dims {
			out.LSA[cat][d] = v
		}
	}
	for k, v := range phone {
		out.Phone[k] = v
	}
	for cat, dims := range lsa {
		if out.LSA[cat] == nil {
			out.LSA[cat] = map[int]float64{}
		}
		for ds, v := range dims {
			d, err := strconv.Atoi(ds)
			if err != nil {
				return Thresholds{}, errdefs.Configuration("thresholds", "lsa dimensionality %q for %s is not an integer", ds, cat)
			}
			out.LSA[cat][d] = v
		}
	}
	return out, nil
}

// For selects the threshold of measure for t. There is no fallback value.
func (th Thresholds) For(measure string, t task.Task) (float64, error) {
	switch measure {
	case task.MeasurePhone:
		v, ok := th.Phone[t.Letter]
		if !ok {
			return 0, errdefs.Configuration("thresholds", "no phone threshold for letter %q", t.Letter)
		}
		return v, nil
	case task.MeasureBiphone:
		return th.Biphone, nil
	case task.MeasureLSA:
		v, ok := th.LSA[t.Category][t.Dimensionality]
		if !ok {
			return 0, errdefs.Configuration("thresholds", "no lsa threshold for %s at dimensionality %d", t.Category, t.Dimensionality)
		}
		return v, nil
	}
	return 0, errdefs.Configuration("thresholds", "unknown similarity measure %q", measure)
}

package measures

import (
	"github.com/speechinformaticslab/vfclust/collection"
	"github.com/speechinformaticslab/vfclust/response"
	"github.com/speechinformaticslab/vfclust/similarity"
)

// Collection measure names.
const (
	NameCount       = "count"
	NameSizeMean    = "size_mean"
	NameSizeMax     = "size_max"
	NameSwitchCount = "switch_count"
)

// CollectionShape writes count, size_mean, size_max, and switch_count for
// one pass, once with and once without singleton collections. An empty
// response yields NA everywhere.
func CollectionShape(m *Map, measure, ctype string, nUnits int, cs []collection.Collection) {
	for _, with := range []bool{true, false} {
		key := func(name string) string { return CollectionKey(measure, ctype, name, with) }
		if nUnits == 0 {
			for _, name := range []string{NameCount, NameSizeMean, NameSizeMax, NameSwitchCount} {
				m.Set(key(name), NA())
			}
			continue
		}
		sizes := collection.Sizes(cs, with)
		m.Set(key(NameCount), Int(len(sizes)))
		if len(sizes) == 0 {
			m.Set(key(NameSizeMean), NA())
			m.Set(key(NameSizeMax), NA())
			m.Set(key(NameSwitchCount), NA())
			continue
		}
		fs := make([]float64, len(sizes))
		largest := 0
		for i, s := range sizes {
			fs[i] = float64(s)
			largest = max(largest, s)
		}
		m.Set(key(NameSizeMean), mean(fs))
		m.Set(key(NameSizeMax), Int(largest))
		m.Set(key(NameSwitchCount), Int(len(sizes)-1))
	}
}

// PairwiseMean is the mean score over all unordered pairs of distinct
// units, or NA with fewer than two units.
func PairwiseMean(units []response.Unit, model similarity.Model) (Value, error) {
	var scores []float64
	for i := range units {
		for j := i + 1; j < len(units); j++ {
			s, err := model.Score(&units[i], &units[j])
			if err != nil {
				return NA(), err
			}
			scores = append(scores, s)
		}
	}
	return mean(scores), nil
}

package scoring

import (
	"sort"
	"strings"

	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// DomainScore is the mean overall score of the finalized capabilities
// of one domain. It returns nil when none qualifies.
func DomainScore(domain string, scores []*model.EnhancedMaturityScore) *float64 {
	var values []float64
	for _, s := range scores {
		if !strings.EqualFold(s.Domain, domain) {
			continue
		}
		if s.IsFinalized() && s.OverallScore != nil {
			values = append(values, *s.OverallScore)
		}
	}
	return roundedMean(values)
}

// OverallScore is the mean over every finalized capability of the
// assessment. It is not the mean of domain scores, so larger domains
// weigh more.
func OverallScore(scores []*model.EnhancedMaturityScore) *float64 {
	var values []float64
	for _, s := range scores {
		if s.IsFinalized() && s.OverallScore != nil {
			values = append(values, *s.OverallScore)
		}
	}
	return roundedMean(values)
}

// CountStatuses tallies capabilities by status
func CountStatuses(scores []*model.EnhancedMaturityScore) model.StatusCounts {
	var counts model.StatusCounts
	for _, s := range scores {
		counts.Add(s.Status)
	}
	return counts
}

// GroupByLayer arranges capability scores by layer, then domain name, then
// capability area name. Domains missing from defs fall into the support
// layer.
func GroupByLayer(scores []*model.EnhancedMaturityScore, defs *model.DefinitionSet) []*model.LayerSummary {
	domains := make(map[string]*model.DomainSummary)
	var keys []string

	for _, s := range scores {
		key := strings.ToLower(s.Domain)
		ds, ok := domains[key]
		if !ok {
			layer := types.LayerSupport
			name := s.Domain
			if def, found := defs.DomainByName(s.Domain); found {
				layer = def.Layer
				name = def.Name
			}
			ds = &model.DomainSummary{Domain: name, Layer: layer}
			domains[key] = ds
			keys = append(keys, key)
		}
		ds.Capabilities = append(ds.Capabilities, s)
		ds.Counts.Add(s.Status)
	}

	layers := make(map[types.Layer]*model.LayerSummary)
	for _, key := range keys {
		ds := domains[key]
		sort.SliceStable(ds.Capabilities, func(i, j int) bool {
			return ds.Capabilities[i].CapabilityArea < ds.Capabilities[j].CapabilityArea
		})
		ds.Score = DomainScore(ds.Domain, ds.Capabilities)

		ls, ok := layers[ds.Layer]
		if !ok {
			ls = &model.LayerSummary{Layer: ds.Layer}
			layers[ds.Layer] = ls
		}
		ls.Domains = append(ls.Domains, ds)
	}

	result := make([]*model.LayerSummary, 0, len(layers))
	for _, ls := range layers {
		sort.SliceStable(ls.Domains, func(i, j int) bool {
			return ls.Domains[i].Domain < ls.Domains[j].Domain
		})
		result = append(result, ls)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Layer.Rank() < result[j].Layer.Rank()
	})
	return result
}

// CollectGaps lists the dimensions whose target level is above or below the
// current one. Both levels must be assessed. Aspect-based dimensions are
// compared by their derived level.
func CollectGaps(a *model.Assessment) []model.GapEntry {
	var gaps []model.GapEntry
	for _, c := range a.Capabilities {
		if c == nil {
			continue
		}
		for _, d := range types.AllDimensions() {
			resp := c.Dimensions.Get(d)
			current := DeriveLevel(d, *resp)
			cur, ok := current.Number()
			if !ok {
				continue
			}
			tgt, ok := resp.TargetMaturityLevel.Number()
			if !ok || tgt == cur {
				continue
			}
			gaps = append(gaps, model.GapEntry{
				CapabilityID:   c.ID,
				CapabilityArea: c.AreaName,
				Domain:         c.DomainName,
				Dimension:      d,
				Current:        current,
				Target:         resp.TargetMaturityLevel,
				Gap:            tgt - cur,
			})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Gap > gaps[j].Gap
	})
	return gaps
}

func roundedMean(values []float64) *float64 {
	m := mean(values)
	if m == nil {
		return nil
	}
	return ptr(roundHalfUp(*m, 2))
}

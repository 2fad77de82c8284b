package dataset

import (
	"math/rand"

	"civic-relevance-workers/internal/models"
)

// MigrateResources converts legacy string resources to weighted objects
// with a random weight in 1..10. Resources already in object form are left
// alone. It returns how many resources were converted.
func MigrateResources(profiles []*models.Profile, rng *rand.Rand) int {
	migrated := 0
	for _, p := range profiles {
		if p.Expertise == nil {
			continue
		}
		for i := range p.Expertise.Resources {
			r := &p.Expertise.Resources[i]
			if !r.Legacy {
				continue
			}
			r.Weight = rng.Intn(10) + 1
			r.Legacy = false
			migrated++
		}
	}
	return migrated
}

// CountLegacy reports how many resources are still in string form.
func CountLegacy(profiles []*models.Profile) int {
	n := 0
	for _, p := range profiles {
		if p.Expertise == nil {
			continue
		}
		for _, r := range p.Expertise.Resources {
			if r.Legacy {
				n++
			}
		}
	}
	return n
}

// CloneProfiles copies profiles deep enough for MigrateResources to run on
// the copy without touching a dataset other callers share.
func CloneProfiles(profiles []*models.Profile) []*models.Profile {
	out := make([]*models.Profile, len(profiles))
	for i, p := range profiles {
		cp := *p
		if p.Expertise != nil {
			exp := *p.Expertise
			exp.Resources = append([]models.Resource(nil), p.Expertise.Resources...)
			cp.Expertise = &exp
		}
		out[i] = &cp
	}
	return out
}

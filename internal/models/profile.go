// internal/models/profile.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Profile is a synthetic citizen record scored against civic issues.
type Profile struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Demographics      *Demographics  `json:"demographics"`
	Location          *Point         `json:"location"`
	Interests         []string       `json:"interests"`
	SocialConnections int            `json:"socialConnections"`
	Expertise         *ExpertiseData `json:"expertise_data,omitempty"`
}

type Demographics struct {
	Age        int      `json:"age"`
	Income     float64  `json:"income"`
	Employment string   `json:"employment"`
	Family     []string `json:"family"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ExpertiseData struct {
	Education  []Education  `json:"education,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Resources  []Resource   `json:"resources,omitempty"`
}

type Education struct {
	Level  string  `json:"level"`
	Degree string  `json:"degree"`
	Angle  float64 `json:"angle"`
}

type Experience struct {
	Role  string   `json:"role"`
	Years float64  `json:"years"`
	Tags  []string `json:"tags,omitempty"`
	Desc  string   `json:"desc,omitempty"`
	Hue   int      `json:"hue,omitempty"`
}

// Resource is a named asset a profile can bring to an issue. Older datasets
// store resources as bare strings; those decode with Legacy set.
type Resource struct {
	Name   string `json:"name"`
	Weight int    `json:"weight,omitempty"`
	Legacy bool   `json:"-"`
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = Resource{Name: name, Legacy: true}
		return nil
	}

	var obj struct {
		Name   string `json:"name"`
		Weight int    `json:"weight"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("resource must be a string or {name, weight} object: %w", err)
	}
	*r = Resource{Name: obj.Name, Weight: obj.Weight}
	return nil
}

// MarshalJSON writes legacy resources back as bare strings so a cached or
// stored copy still shows what needs migrating.
func (r Resource) MarshalJSON() ([]byte, error) {
	if r.Legacy {
		return json.Marshal(r.Name)
	}
	type object struct {
		Name   string `json:"name"`
		Weight int    `json:"weight,omitempty"`
	}
	return json.Marshal(object{Name: r.Name, Weight: r.Weight})
}

// EffectiveWeight is the display weight; unset weights count as 1.
func (r Resource) EffectiveWeight() int {
	if r.Weight <= 0 {
		return 1
	}
	return r.Weight
}

// TotalYears sums the years across all experience entries.
func (p *Profile) TotalYears() float64 {
	if p.Expertise == nil {
		return 0
	}
	total := 0.0
	for _, e := range p.Expertise.Experience {
		total += e.Years
	}
	return total
}

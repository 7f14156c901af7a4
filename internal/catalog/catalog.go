package catalog

import (
	"fmt"
	"sort"

	"renvask/internal/models"
)

// Catalog is the single owned copy of services and add-ons. Every quote in
// the system resolves prices through it; nothing else may carry price
// literals. Built once at startup, read-only afterwards.
type Catalog struct {
	services map[string]models.Service
	addOns   map[string]models.AddOn
	sorted   []models.Service
}

// New validates the entries and builds the lookup tables.
func New(services []models.Service, addOns []models.AddOn) (*Catalog, error) {
	c := &Catalog{
		services: make(map[string]models.Service, len(services)),
		addOns:   make(map[string]models.AddOn, len(addOns)),
	}

	for _, svc := range services {
		if svc.ID == "" {
			return nil, fmt.Errorf("service '%s' has empty id", svc.Name)
		}
		if _, dup := c.services[svc.ID]; dup {
			return nil, fmt.Errorf("duplicate service id: %s", svc.ID)
		}
		if svc.BasePrice < 0 {
			return nil, fmt.Errorf("service %s has negative base price", svc.ID)
		}
		if svc.DurationMinutes <= 0 {
			return nil, fmt.Errorf("service %s has non-positive duration", svc.ID)
		}
		c.services[svc.ID] = svc
	}

	for _, a := range addOns {
		if a.ID == "" {
			return nil, fmt.Errorf("add-on '%s' has empty id", a.Name)
		}
		if _, dup := c.addOns[a.ID]; dup {
			return nil, fmt.Errorf("duplicate add-on id: %s", a.ID)
		}
		if a.PriceDelta < 0 || a.DurationDeltaMinutes < 0 {
			return nil, fmt.Errorf("add-on %s has negative delta", a.ID)
		}
		c.addOns[a.ID] = a
	}

	c.sorted = make([]models.Service, 0, len(services))
	for _, svc := range services {
		c.sorted = append(c.sorted, svc)
	}
	sort.Slice(c.sorted, func(i, j int) bool {
		if c.sorted[i].SortOrder == c.sorted[j].SortOrder {
			return c.sorted[i].ID < c.sorted[j].ID
		}
		return c.sorted[i].SortOrder < c.sorted[j].SortOrder
	})

	return c, nil
}

// ServiceByID returns an active service or an error.
func (c *Catalog) ServiceByID(id string) (models.Service, error) {
	svc, ok := c.services[id]
	if !ok || !svc.IsActive {
		return models.Service{}, fmt.Errorf("unknown service: %s", id)
	}
	return svc, nil
}

// AddOnByID returns an active add-on or an error.
func (c *Catalog) AddOnByID(id string) (models.AddOn, error) {
	a, ok := c.addOns[id]
	if !ok || !a.IsActive {
		return models.AddOn{}, fmt.Errorf("unknown add-on: %s", id)
	}
	return a, nil
}

// ResolveAddOns maps ids to add-ons with set semantics: duplicates collapse,
// unknown ids fail the whole resolution.
func (c *Catalog) ResolveAddOns(ids []string) ([]models.AddOn, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]models.AddOn, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		a, err := c.AddOnByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// ActiveServices returns active services in display order.
func (c *Catalog) ActiveServices() []models.Service {
	out := make([]models.Service, 0, len(c.sorted))
	for _, svc := range c.sorted {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out
}

// ActiveAddOns returns active add-ons in display order.
func (c *Catalog) ActiveAddOns() []models.AddOn {
	out := make([]models.AddOn, 0, len(c.addOns))
	for _, a := range c.addOns {
		if a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

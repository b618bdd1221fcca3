package domain

// DefaultServices is the built-in value-added service catalog, used when
// the config file does not override it.
func DefaultServices() []Service {
	return []Service{
		{ID: "1", Name: "Music Streaming", Description: "Unlimited music streaming billed to your airtime"},
		{ID: "2", Name: "Video Streaming", Description: "Mobile video on demand"},
		{ID: "3", Name: "Daily News", Description: "Daily news digest delivered every morning"},
	}
}

// DefaultProviders is the built-in carrier rate table.
func DefaultProviders() []Provider {
	return []Provider{
		{ID: "vodacom", Name: "Vodacom", Rate: 1.5, Currency: "ZAR"},
		{ID: "mtn", Name: "MTN", Rate: 1.4, Currency: "ZAR"},
		{ID: "airtel", Name: "Airtel", Rate: 1.3, Currency: "ZAR"},
	}
}

// DefaultProviderID is used when a subscribe request names no carrier.
const DefaultProviderID = "vodacom"

// Catalog is the read-only service lookup handed to the application layer.
type Catalog struct {
	services []Service
	byID     map[string]Service
}

func NewCatalog(services []Service) *Catalog {
	byID := make(map[string]Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	return &Catalog{services: services, byID: byID}
}

// Services returns the full catalog in declaration order.
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// ServiceByID looks up one catalog entry.
func (c *Catalog) ServiceByID(id string) (Service, bool) {
	svc, ok := c.byID[id]
	return svc, ok
}

// ServiceName resolves a display name, falling back to the raw id for
// services no longer in the catalog. Transaction records store the name the
// same way the history endpoint renders it.
func (c *Catalog) ServiceName(id string) string {
	if svc, ok := c.byID[id]; ok {
		return svc.Name
	}
	return id
}

package systems

// SystemInfo describes a per-frame sky system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (matches the perf phase name)
	Name        string // Display name
	Description string // What this system does
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems in frame order.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: "sun", Name: "Sun", Description: "Moves the sun along its trajectory"})
	reg.Register(SystemInfo{ID: "sky_color", Name: "Sky Color", Description: "Samples the day/night gradient"})
	reg.Register(SystemInfo{ID: "clouds", Name: "Clouds", Description: "Regenerates the cloud density grid"})
	reg.Register(SystemInfo{ID: "occlusion", Name: "Occlusion", Description: "Darkens the sky under covered sun"})
	reg.Register(SystemInfo{ID: "stars", Name: "Stars", Description: "Fades stars with the time of day"})
	return reg
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

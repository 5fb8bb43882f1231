package components

// Star marks a star entity. Alpha is rederived from the sun every frame;
// the star's Position never changes after spawn.
type Star struct {
	Index int     // Spawn order, stable for the process lifetime
	Alpha float32 // 0 = invisible (day), 1 = full night brightness
}

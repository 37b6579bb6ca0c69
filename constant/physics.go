package constant

const (
	// CollisionEpsilon is the separation below which touching boxes do not overlap
	CollisionEpsilon = 1e-6

	// BonkDamping scales vertical speed after hitting a ceiling
	BonkDamping = -0.5
)

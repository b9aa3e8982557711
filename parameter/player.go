package parameter

// Reference kinematic mover
const (
	PlayerGravity     = -20.0
	PlayerFlapImpulse = 8.0

	// PlayerRestEpsilon marks the apex of a flap as resting
	PlayerRestEpsilon = 0.01

	// PlayerMaxFallSpeed caps downward velocity, 0 disables
	PlayerMaxFallSpeed = 30.0

	// PlayerPickupRadius is the coin collection distance around the player
	PlayerPickupRadius = 0.6
)

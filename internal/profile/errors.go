package profile

import "errors"

// Configuration errors. Validate wraps these with the offending field name.
var (
	ErrNoBullet      = errors.New("no bullet profile")
	ErrNoPrefab      = errors.New("projectile mode without a prefab")
	ErrBadRange      = errors.New("max range must be > 0")
	ErrBadDamage     = errors.New("base damage must be >= 0")
	ErrBadBudget     = errors.New("budget must be >= 0")
	ErrBadSpeed      = errors.New("projectile speed must be > 0")
	ErrBadGravity    = errors.New("gravity must be >= 0")
	ErrBadRadius     = errors.New("cast radius must be >= 0")
	ErrBadAngle      = errors.New("angle must be in [0,89] degrees")
	ErrBadFireRate   = errors.New("fire rate must be > 0")
	ErrBadPellets    = errors.New("pellets must be >= 1")
	ErrBadCurve      = errors.New("invalid falloff curve")
	ErrBadMode       = errors.New("unknown firing mode")
	ErrUnknownEffect = errors.New("unknown effect kind")
	ErrBadParams     = errors.New("invalid effect parameters")
	ErrUnknownBullet = errors.New("unknown bullet id")
)

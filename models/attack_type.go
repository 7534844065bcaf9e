package models

// AttackType classifies what perturbation (if any) was applied to an image.
type AttackType string

const (
	AttackTypeNoAttack    AttackType = "no_attack"
	AttackTypeBlur        AttackType = "blur"
	AttackTypeNoise       AttackType = "noise"
	AttackTypeAdversarial AttackType = "adversarial"
	AttackTypeOther       AttackType = "other"
)

// AttackTypes returns every recognized attack type.
func AttackTypes() []AttackType {
	return []AttackType{
		AttackTypeNoAttack,
		AttackTypeBlur,
		AttackTypeNoise,
		AttackTypeAdversarial,
		AttackTypeOther,
	}
}

// Valid reports whether the value is one of the enumerated attack types.
func (a AttackType) Valid() bool {
	switch a {
	case AttackTypeNoAttack, AttackTypeBlur, AttackTypeNoise, AttackTypeAdversarial, AttackTypeOther:
		return true
	default:
		return false
	}
}

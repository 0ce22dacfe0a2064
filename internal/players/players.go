// Package players holds the scouting-scale attributes of pitchers and
// hitters and converts them into the physical parameters the decision
// packages need: bat speed, swing discipline, command precision, pitch
// arsenal. It keeps the teacher's 20-80 scouting scale and Hand field but
// drops the stat-blend outcome simulation (wOBA splits, leverage weighting)
// that modeled plate appearances as a lookup rather than physics.
package players

import "github.com/baseball-sim/pitchsim/internal/simconfig"

// Hand is batting or throwing handedness.
type Hand string

const (
	Left  Hand = "L"
	Right Hand = "R"
)

// Attributes are 20-80 scouting-scale ratings, the same scale the teacher
// uses for every tool grade.
type Attributes struct {
	Speed       int
	Power       int
	Contact     int
	Eye         int
	Vision      int // reaction-time grade: higher reads high-velocity pitches better
	ArmStrength int
	Accuracy    int
	Range       int
	Hands       int
	Clutch      int
	Durability  int
	Composure   int
}

// scale20to80 maps a 20-80 grade to a 0-1 ratio centered on 50 = average.
func scale20to80(grade int) float64 {
	return float64(grade-20) / 60.0
}

// Hitter is a batter's identity plus the attributes that drive swing
// decisions and bat-ball collision quality.
type Hitter struct {
	ID         string
	Name       string
	BatsHand   Hand
	Attributes Attributes
}

// BatSpeedMPH derives average bat speed from the Power and Contact grades;
// elite power drives faster average bat speed, per spec.md §4.8's
// BBS-equation contract that bat speed scales exit velocity.
func (h Hitter) BatSpeedMPH() float64 {
	power := scale20to80(h.Attributes.Power)
	contact := scale20to80(h.Attributes.Contact)
	return 66.0 + 10.0*power + 4.0*contact
}

// DisciplineRating is the 0-1 ratio (derived from the Eye grade) the swing
// decision model scales its ball/strike recognition term by.
func (h Hitter) DisciplineRating() float64 {
	return scale20to80(h.Attributes.Eye)
}

// ContactRating is the 0-1 ratio the contact model uses for whiff
// probability and foul-off-to-protect-the-plate rate.
func (h Hitter) ContactRating() float64 {
	return scale20to80(h.Attributes.Contact)
}

// PowerRating is the 0-1 ratio the contact model uses to bias attack angle
// toward the loft end of simconfig.Calibration.AttackAngleRangeDeg.
func (h Hitter) PowerRating() float64 {
	return scale20to80(h.Attributes.Power)
}

// ReactionRating is the 0-1 ratio (derived from the Vision grade) the swing
// decision model uses to offset the velocity penalty on pitches faster than
// about 95 mph: a quick-reacting hitter shrugs off triple-digit heat that
// would otherwise push a slower-reacting hitter into more mistaken takes.
func (h Hitter) ReactionRating() float64 {
	return scale20to80(h.Attributes.Vision)
}

// Pitcher is a pitcher's identity, attributes, and the arsenal of pitch
// types they throw.
type Pitcher struct {
	ID          string
	Name        string
	ThrowsHand  Hand
	Attributes  Attributes
	ControlTier string // "elite", "average", "poor" — keys simconfig.Calibration.CommandSigmaInches
	Arsenal     []simconfig.ArsenalPitch
}

// ControlZoneBias is the 0-1 ratio (derived from Accuracy) the pitcher
// intention model's command noise scales by, on top of the flat
// ControlTier sigma: better accuracy tightens dispersion further within a
// tier.
func (p Pitcher) ControlZoneBias() float64 {
	return scale20to80(p.Attributes.Accuracy)
}

// PitchByName returns the named arsenal entry, or the first pitch in the
// arsenal (conventionally the fastball) if the name isn't found.
func (p Pitcher) PitchByName(name string) simconfig.ArsenalPitch {
	for _, ap := range p.Arsenal {
		if ap.Name == name {
			return ap
		}
	}
	if len(p.Arsenal) > 0 {
		return p.Arsenal[0]
	}
	return simconfig.ArsenalPitch{Name: name}
}

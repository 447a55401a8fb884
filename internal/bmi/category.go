package bmi

// Category is one advisory bucket of the BMI ladder.
type Category string

const (
	ObeseSevere       Category = "obese_severe"
	Obese             Category = "obese"
	Overweight        Category = "overweight"
	HealthyUpper      Category = "healthy_upper"
	HealthyIdeal      Category = "healthy_ideal"
	HealthyLower      Category = "healthy_lower"
	Underweight       Category = "underweight"
	UnderweightSevere Category = "underweight_severe"
)

var categoryInfo = map[Category]struct {
	label  string
	advice string
}{
	ObeseSevere: {
		"Obese (severe)",
		"Obese: Wow, just wow!. We need to talk. Urgently! We also need to see a doctor!",
	},
	Obese: {
		"Obese",
		"Obese: Your health may be at risk if you do not lose weight. Book a session with mama fitness members for advise.",
	},
	Overweight: {
		"Overweight",
		"Overweight: Weight loss plan? You are advised to lose some weight for health reasons. We recommended you to talk to mama fitness councilors!",
	},
	HealthyUpper: {
		"Healthy (upper)",
		"Healthy weight: Slightly fat, you can eat less. Also a lot of exercise - Simply follow our workout scheme based on your BMI ! :)",
	},
	HealthyIdeal: {
		"Healthy (ideal)",
		"Healthy weight: I am so envious of your figure ! :) you are at a healthy weight for your height. By maintaining a healthy weight, you lower your risk of developing serious health problems.",
	},
	HealthyLower: {
		"Healthy (lower)",
		"Healthy weight: Slightly thin,You should eat more !",
	},
	Underweight: {
		"Underweight",
		"Underweight: Hurry to eat! You are recommended to ask a mama fitness instructor for advice. !",
	},
	UnderweightSevere: {
		"Underweight (severe)",
		"Underweight: Wow ! We need to see a doctor !! ",
	},
}

// Label is the short human name of the category.
func (c Category) Label() string {
	return categoryInfo[c].label
}

// Advice is the fixed advisory text displayed for the category.
func (c Category) Advice() string {
	return categoryInfo[c].advice
}

// Threshold matches a BMI strictly above Bound, or at Bound too when
// Inclusive is set.
type Threshold struct {
	Bound     float64  `json:"bound"`
	Inclusive bool     `json:"inclusive"`
	Category  Category `json:"category"`
}

func (t Threshold) match(bmi float64) bool {
	if t.Inclusive {
		return bmi >= t.Bound
	}
	return bmi > t.Bound
}

// Ladder is evaluated top-down; the first matching threshold wins and
// Fallback applies when none match.
type Ladder struct {
	Thresholds []Threshold `json:"thresholds"`
	Fallback   Category    `json:"fallback"`
}

// DefaultLadder keeps the historical boundaries exactly, uneven spacing
// included.
var DefaultLadder = Ladder{
	Thresholds: []Threshold{
		{Bound: 40, Category: ObeseSevere},
		{Bound: 30, Category: Obese},
		{Bound: 25, Category: Overweight},
		{Bound: 22, Category: HealthyUpper},
		{Bound: 21, Inclusive: true, Category: HealthyIdeal},
		{Bound: 18, Inclusive: true, Category: HealthyLower},
		{Bound: 16, Inclusive: true, Category: Underweight},
	},
	Fallback: UnderweightSevere,
}

// Categorize maps a BMI value onto the ladder.
func (l Ladder) Categorize(bmi float64) Category {
	for _, t := range l.Thresholds {
		if t.match(bmi) {
			return t.Category
		}
	}
	return l.Fallback
}

// Categories lists every category the ladder can produce, top-down.
func (l Ladder) Categories() []Category {
	out := make([]Category, 0, len(l.Thresholds)+1)
	for _, t := range l.Thresholds {
		out = append(out, t.Category)
	}
	return append(out, l.Fallback)
}

// Categorize maps a BMI value onto DefaultLadder.
func Categorize(bmi float64) Category {
	return DefaultLadder.Categorize(bmi)
}

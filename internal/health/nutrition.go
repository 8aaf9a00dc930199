package health

// MealType can be one of:
//   - breakfast
//   - lunch
//   - dinner
//   - snack
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

func (mt MealType) String() string {
	return string(mt)
}

func (mt MealType) IsValid() bool {
	switch mt {
	case MealTypeBreakfast,
		MealTypeLunch,
		MealTypeDinner,
		MealTypeSnack:
		return true
	default:
		return false
	}
}

type Meal struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     MealType `json:"type"`
	Calories int      `json:"calories"`
	ProteinG int      `json:"protein"`
	CarbsG   int      `json:"carbs"`
	FatG     int      `json:"fat"`
	// Time is an optional "HH:MM" time of day
	Time string `json:"time,omitempty"`
}

// Nutrition is the food log of a single day. Totals are always the sum
// over Meals, use NewNutrition to build one.
type Nutrition struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Date          string `json:"date"`
	Meals         []Meal `json:"meals"`
	TotalCalories int    `json:"totalCalories"`
	TotalProteinG int    `json:"totalProtein"`
	TotalCarbsG   int    `json:"totalCarbs"`
	TotalFatG     int    `json:"totalFat"`
}

func NewNutrition(id, userID, date string, meals []Meal) Nutrition {
	n := Nutrition{
		ID:     id,
		UserID: userID,
		Date:   date,
		Meals:  meals,
	}
	for _, m := range meals {
		n.TotalCalories += m.Calories
		n.TotalProteinG += m.ProteinG
		n.TotalCarbsG += m.CarbsG
		n.TotalFatG += m.FatG
	}
	return n
}

// MacroGrams is the sum of protein, carbs and fat in grams.
func (n Nutrition) MacroGrams() int {
	return n.TotalProteinG + n.TotalCarbsG + n.TotalFatG
}

package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"medifinder/src/lib"
	"medifinder/src/types"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/tidwall/gjson"
)

const validationCacheTTL = 24 * time.Hour

// ValidateMedicineName asks the model whether the input is a recognized
// medicine and, for common misspellings, what the corrected name is.
// Malformed model output is treated as valid-unchanged so a flaky model
// never blocks the user. A transport error is returned to the caller, which
// lets the search workflow fall back to its confirm-anyway branch.
func ValidateMedicineName(ctx context.Context, name string) (*types.MedicineValidation, error) {
	if cached := getCachedValidation(name); cached != nil {
		return cached, nil
	}
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		v := mockValidateMedicineName(name)
		putCachedValidation(name, v)
		return v, nil
	}

	prompt := fmt.Sprintf(`You are a helpful medical assistant. The user has entered a medicine name. Please validate it.
User input: %q
Is this a recognized medicine name? If it is a common misspelling, correct it.
Provide a response in JSON format with three fields:
1. "valid": a boolean (true if it's a real medicine or a correctable misspelling, false otherwise).
2. "correctedName": a string with the corrected, properly capitalized name if valid, otherwise an empty string.
3. "reason": a brief explanation for the user.`, name)
	out, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("Error validating medicine name: %s\n", err.Error())
		return nil, err
	}
	out = stripCodeFence(out)
	if !gjson.Valid(out) || !gjson.Get(out, "valid").Exists() {
		return &types.MedicineValidation{Valid: true, CorrectedName: name}, nil
	}
	v := &types.MedicineValidation{
		Valid:         gjson.Get(out, "valid").Bool(),
		CorrectedName: gjson.Get(out, "correctedName").String(),
		Reason:        gjson.Get(out, "reason").String(),
	}
	putCachedValidation(name, v)
	return v, nil
}

// GetMedicineRecommendations maps a disease/symptom query to a
// comma-separated candidate list.
func GetMedicineRecommendations(ctx context.Context, disease string) (string, error) {
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		q := strings.ToLower(disease)
		if strings.Contains(q, "fever") {
			return "Paracetamol, Ibuprofen, Dolo 650", nil
		}
		if strings.Contains(q, "headache") {
			return "Paracetamol, Ibuprofen, Aspirin", nil
		}
		return "", nil
	}
	prompt := fmt.Sprintf("Based on the user's query for a disease or symptom, recommend relevant medicine names. List common over-the-counter or prescription medicines. Provide the response as a single, comma-separated string of the top 1-3 medicine names. For example, for 'headache', return 'Paracetamol, Ibuprofen'. User query: '%s'", disease)
	return client.GenerateContent(ctx, prompt)
}

// SplitRecommendations turns the comma-joined model output into trimmed,
// non-empty candidate names.
func SplitRecommendations(s string) []string {
	parts := strings.Split(s, ",")
	choices := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			choices = append(choices, t)
		}
	}
	return choices
}

// AnalyzePrescription extracts medicine names from a prescription photo as a
// comma-separated list.
func AnalyzePrescription(ctx context.Context, imageB64 string) (string, error) {
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		return "Metformin 500mg", nil
	}
	prompt := "Analyze this prescription and list the medicine names found. Return only a comma-separated list of medicine names."
	return client.GenerateContentWithImage(ctx, prompt, "image/jpeg", imageB64)
}

// ParsePriceSlip extracts {name, price} rows from a photographed price list,
// used by the owner inventory upload.
func ParsePriceSlip(ctx context.Context, imageB64 string) ([]types.PriceSlipItem, error) {
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		return []types.PriceSlipItem{
			{MedicineName: "Dolo 650", Price: 31.00},
			{MedicineName: "Aspirin 75mg", Price: 15.50},
			{MedicineName: "Cetirizine 10mg", Price: 25.00},
		}, nil
	}
	prompt := `Analyze this image of a medicine price list. Extract each medicine's name and its price. Ignore any item that isn't a medicine. Provide the response as a JSON array of objects, where each object has "medicineName" (string) and "price" (number). Example: [{"medicineName": "Paracetamol 500mg", "price": 30.50}]`
	out, err := client.GenerateContentWithImage(ctx, prompt, "image/jpeg", imageB64)
	if err != nil {
		return nil, err
	}
	out = stripCodeFence(out)
	if !gjson.Valid(out) || !gjson.Parse(out).IsArray() {
		log.Printf("Price slip parser returned non-JSON response: %s\n", out)
		return []types.PriceSlipItem{}, nil
	}
	items := []types.PriceSlipItem{}
	gjson.Parse(out).ForEach(func(_, row gjson.Result) bool {
		name := row.Get("medicineName").String()
		if name == "" {
			return true
		}
		items = append(items, types.PriceSlipItem{
			MedicineName: name,
			Price:        row.Get("price").Float(),
		})
		return true
	})
	return items, nil
}

// GetMedicineDescription produces a short layperson description of a
// medicine for the results page.
func GetMedicineDescription(ctx context.Context, name string) (string, error) {
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "paracetamol") || strings.Contains(lower, "dolo 650") {
			return "Paracetamol, the active ingredient in Dolo 650, is a common pain reliever and fever reducer. It is used to treat many conditions such as headaches, muscle aches, arthritis, backache, toothaches, colds, and fevers.", nil
		}
		return fmt.Sprintf("Information about %s would be shown here.", name), nil
	}
	prompt := fmt.Sprintf("Provide a brief, simple, one-paragraph description for the medicine %q. Write it for a layperson, focusing on its common use.", name)
	return client.GenerateContent(ctx, prompt)
}

// GetMedicineAlternative names a single common substitute for a medicine, or
// an empty string when none is known.
func GetMedicineAlternative(ctx context.Context, name string) (string, error) {
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "dolo 650"):
			return "Crocin 650", nil
		case strings.Contains(lower, "paracetamol"):
			return "Ibuprofen", nil
		case strings.Contains(lower, "ibuprofen"):
			return "Paracetamol", nil
		}
		return "", nil
	}
	prompt := fmt.Sprintf("What is a single, common, and widely available alternative or substitute medicine for %q? Provide only the name of the medicine.", name)
	return client.GenerateContent(ctx, prompt)
}

func mockValidateMedicineName(name string) *types.MedicineValidation {
	lower := strings.ToLower(name)
	knownMedicines := []string{"paracetamol", "ibuprofen", "metformin", "aspirin", "atorvastatin", "amoxicillin", "cetirizine", "metformin 500mg", "dolo 650", "crocin 650"}
	properNames := map[string]string{"dolo 650": "Dolo 650", "crocin 650": "Crocin 650"}

	for _, known := range knownMedicines {
		if known != lower {
			continue
		}
		proper, ok := properNames[lower]
		if !ok {
			proper = strings.ToUpper(lower[:1]) + lower[1:]
		}
		return &types.MedicineValidation{Valid: true, CorrectedName: proper}
	}
	if lower == "paracetmol" {
		return &types.MedicineValidation{Valid: true, CorrectedName: "Paracetamol", Reason: "Corrected spelling."}
	}
	if len(name) < 3 {
		return &types.MedicineValidation{Valid: false, Reason: fmt.Sprintf("%q is too short to be a valid medicine name.", name)}
	}
	return &types.MedicineValidation{Valid: false, Reason: fmt.Sprintf("%q does not seem to be a valid medicine name. Please check the spelling.", name)}
}

// Model replies often arrive wrapped in a markdown fence even when asked for
// bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func validationCacheKey(name string) string {
	return fmt.Sprintf("ai:validate:%s", slug.Make(name))
}

func getCachedValidation(name string) *types.MedicineValidation {
	rd := lib.GetRedisClient()
	if rd == nil {
		return nil
	}
	raw, err := rd.Get(context.Background(), validationCacheKey(name)).Result()
	if err != nil {
		return nil
	}
	var v types.MedicineValidation
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}
	return &v
}

func putCachedValidation(name string, v *types.MedicineValidation) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rd.Set(context.Background(), validationCacheKey(name), string(raw), validationCacheTTL).Err(); err != nil {
		log.Printf("[redis] Error caching validation for %s: %s\n", name, err.Error())
	}
}

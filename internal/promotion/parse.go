package promotion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/toko-pos/internal/common"
)

// Spec is the configuration form of a promotion, e.g. {"package": [3, 10]}.
// An empty spec means no promotion.
type Spec map[string]any

// Parse maps a configuration value to the matching promotion variant.
func Parse(spec Spec) (Promotion, error) {
	if len(spec) == 0 {
		return None(), nil
	}
	if len(spec) > 1 {
		tags := make([]string, 0, len(spec))
		for tag := range spec {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		return Promotion{}, common.ConfigError(fmt.Sprintf("promotion takes a single rule, got %s", strings.Join(tags, ", ")))
	}

	var (
		tag   string
		value any
	)
	for k, v := range spec {
		tag, value = k, v
	}

	var p Promotion
	switch normalizeTag(tag) {
	case "none":
		return None(), nil
	case "getonefree":
		n, err := common.ToInt(value)
		if err != nil {
			return Promotion{}, common.ConfigError(fmt.Sprintf("get_one_free: %v", err))
		}
		p = GetOneFree(n)
	case "package":
		size, percent, err := pair(value)
		if err != nil {
			return Promotion{}, common.ConfigError(fmt.Sprintf("package: %v", err))
		}
		p = Package(size, percent)
	case "threshold":
		threshold, percent, err := pair(value)
		if err != nil {
			return Promotion{}, common.ConfigError(fmt.Sprintf("threshold: %v", err))
		}
		p = Threshold(threshold, percent)
	default:
		return Promotion{}, common.ConfigError(fmt.Sprintf("unknown promotion %q", tag))
	}
	if err := p.Validate(); err != nil {
		return Promotion{}, err
	}
	return p, nil
}

// MustParse behaves like Parse but panics on error.
func MustParse(spec Spec) Promotion {
	p, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return p
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.NewReplacer("_", "", "-", "").Replace(tag)
}

// pair reads a two element [count, percent] value.
func pair(value any) (int, decimal.Decimal, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []int:
		for _, n := range v {
			items = append(items, n)
		}
	case map[string]any:
		// {"3": 10} is the single-entry hash form: count as key, percent as value.
		if len(v) != 1 {
			return 0, decimal.Zero, fmt.Errorf("expected [count, percent], got %d entries", len(v))
		}
		for key, percent := range v {
			items = []any{key, percent}
		}
	case map[any]any:
		// YAML decodes {3: 10} with a non-string key to this form.
		if len(v) != 1 {
			return 0, decimal.Zero, fmt.Errorf("expected [count, percent], got %d entries", len(v))
		}
		for key, percent := range v {
			items = []any{key, percent}
		}
	default:
		return 0, decimal.Zero, fmt.Errorf("expected [count, percent], got %T", value)
	}
	if len(items) != 2 {
		return 0, decimal.Zero, fmt.Errorf("expected [count, percent], got %d values", len(items))
	}
	count, err := common.ToInt(items[0])
	if err != nil {
		return 0, decimal.Zero, err
	}
	percent, err := common.ToDecimal(items[1])
	if err != nil {
		return 0, decimal.Zero, err
	}
	return count, percent, nil
}

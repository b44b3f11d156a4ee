package inventory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/toko-pos/internal/common"
	"github.com/noah-isme/toko-pos/internal/coupon"
	"github.com/noah-isme/toko-pos/internal/money"
	"github.com/noah-isme/toko-pos/internal/promotion"
)

// CatalogFile is the YAML form of a catalog:
//
//	products:
//	  - name: Green Tea
//	    price: "0.79"
//	    promotion: {get_one_free: 3}
//	coupons:
//	  - name: TEATIME
//	    type: {percent: 20}
type CatalogFile struct {
	Products []ProductEntry `yaml:"products" validate:"dive"`
	Coupons  []CouponEntry  `yaml:"coupons" validate:"dive"`
}

// ProductEntry describes one product registration.
type ProductEntry struct {
	Name      string         `yaml:"name"`
	Price     string         `yaml:"price" validate:"required"`
	Promotion promotion.Spec `yaml:"promotion" validate:"omitempty,max=1"`
}

// CouponEntry describes one coupon registration.
type CouponEntry struct {
	Name string          `yaml:"name" validate:"required"`
	Type coupon.TypeSpec `yaml:"type" validate:"required,len=1"`
}

// LoadFile seeds the inventory from the YAML catalog at path.
func (inv *Inventory) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return inv.Seed(f)
}

// Seed decodes a YAML catalog and registers every entry in order. Entries that fail are skipped and
// reported together; the others stay registered.
func (inv *Inventory) Seed(r io.Reader) error {
	var file CatalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return common.NewAppError(common.CodeConfig, fmt.Sprintf("decode catalog: %v", err), common.ErrConfig)
	}
	if err := validator.New().Struct(file); err != nil {
		details := validationDetails(err)
		appErr := common.NewAppError(common.CodeConfig, fmt.Sprintf("invalid catalog: %s", describeValidation(details, err)), common.ErrConfig)
		appErr.Details = details
		return appErr
	}

	var joined error
	for i, entry := range file.Products {
		price, err := money.Parse(entry.Price)
		if err != nil {
			joined = errors.Join(joined, fmt.Errorf("products[%d] %q: %w", i, entry.Name,
				common.ValidationError(fmt.Sprintf("price %q is not a number", entry.Price))))
			continue
		}
		if _, err := inv.Register(entry.Name, price, entry.Promotion); err != nil {
			joined = errors.Join(joined, fmt.Errorf("products[%d] %q: %w", i, entry.Name, err))
		}
	}
	for i, entry := range file.Coupons {
		if _, err := inv.RegisterCoupon(entry.Name, entry.Type); err != nil {
			joined = errors.Join(joined, fmt.Errorf("coupons[%d] %q: %w", i, entry.Name, err))
		}
	}
	inv.Logger.Info().
		Int("products", len(inv.products)).
		Int("coupons", len(inv.coupons)).
		Bool("complete", joined == nil).
		Msg("catalog_seeded")
	return joined
}

// validationDetails maps each failing field namespace to the rule it broke.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return details
}

func describeValidation(details map[string]string, err error) string {
	if len(details) == 0 {
		return err.Error()
	}
	fields := make([]string, 0, len(details))
	for field := range details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s failed %s", field, details[field]))
	}
	return strings.Join(parts, "; ")
}

package models

// Column labels of the promotions sheet. They are assigned positionally and
// never read from the sheet's own header row.
const (
	FieldSrc   = "src"
	FieldName  = "product-grid-item__info-container__name"
	FieldPrice = "price"
	FieldOld   = "old"
	FieldFlag  = "ng-star-inserted"
)

// FieldNames lists the column labels in sheet order.
var FieldNames = [...]string{FieldSrc, FieldName, FieldPrice, FieldOld, FieldFlag}

// FieldCount is the number of columns a promotions sheet carries.
const FieldCount = len(FieldNames)

// PromotionRecord is one row of the promotions sheet. Values are kept as the
// cell held them: int64 or float64 for numeric cells, string for text, nil for
// empty cells.
type PromotionRecord struct {
	Src   any `json:"src"`
	Name  any `json:"product-grid-item__info-container__name"`
	Price any `json:"price"`
	Old   any `json:"old"` // reference price before the promotion
	Flag  any `json:"ng-star-inserted"`
}

// NewPromotionRecord assigns values to fields by position. Missing trailing
// values stay nil; values past FieldCount are ignored.
func NewPromotionRecord(values []any) PromotionRecord {
	var v [FieldCount]any
	copy(v[:], values)
	return PromotionRecord{
		Src:   v[0],
		Name:  v[1],
		Price: v[2],
		Old:   v[3],
		Flag:  v[4],
	}
}

// PromotionDataset is the ordered content of the dataset file.
type PromotionDataset []PromotionRecord

package orderrepo

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"storefront/internal/core/domain/model/changeset"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// Fields accepted by ApplyChanges in addition to the changeset.Field* constants.
const (
	FieldItemsPrice    = "itemsPrice"
	FieldShippingPrice = "shippingPrice"
	FieldTotalPrice    = "totalPrice"
	FieldPaymentMethod = "paymentMethod"
	FieldPaymentResult = "paymentResult"
	FieldCustomOrderID = "customOrderId"
)

type column struct {
	name    string
	convert func(field string, value any) (any, error)
}

// updatable is the whitelist of partially updatable fields. customOrderId is
// deliberately absent: the identifier never changes after creation.
var updatable = map[string]column{
	changeset.FieldIsPaid:      {name: "is_paid", convert: toBool},
	changeset.FieldPaidAt:      {name: "paid_at", convert: toTime},
	changeset.FieldIsDelivered: {name: "is_delivered", convert: toBool},
	changeset.FieldDeliveredAt: {name: "delivered_at", convert: toTime},
	changeset.FieldOrderStatus: {name: "order_status", convert: toStatus},
	FieldItemsPrice:            {name: "items_price", convert: toPrice},
	FieldShippingPrice:         {name: "shipping_price", convert: toPrice},
	FieldTotalPrice:            {name: "total_price", convert: toPrice},
	FieldPaymentMethod:         {name: "payment_method", convert: toPaymentMethod},
	FieldPaymentResult:         {name: "payment_result", convert: toPaymentResult},
}

// toColumns maps change-set fields to column assignments.
func toColumns(changes changeset.ChangeSet) (map[string]any, error) {
	fields := changes.Fields()
	if len(fields) == 0 {
		return nil, changeset.ErrChangeSetIsEmpty
	}

	updates := make(map[string]any, len(fields)+1)
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		if field == FieldCustomOrderID {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				FieldCustomOrderID,
				fmt.Errorf("%s cannot be changed once assigned", FieldCustomOrderID),
			)
		}

		col, ok := updatable[field]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				field,
				fmt.Errorf("%s is not an updatable order field", field),
			)
		}

		value, err := col.convert(field, fields[field])
		if err != nil {
			return nil, err
		}
		updates[col.name] = value
	}

	return updates, nil
}

func toBool(field string, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%v is not a boolean", value))
	}
	return b, nil
}

func toTime(field string, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		return v.UTC(), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil, nil
		}
		return v.UTC(), nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
		}
		return t.UTC(), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%v is not a timestamp", value))
	}
}

func toStatus(field string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		status, err := order.ParseStatus(v)
		if err != nil {
			return nil, err
		}
		return status.String(), nil
	case order.Status:
		if err := v.Validate(); err != nil {
			return nil, err
		}
		return v.String(), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%v is not a status", value))
	}
}

func toPrice(field string, value any) (any, error) {
	var price float64
	switch v := value.(type) {
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int64:
		price = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
		}
		price = f
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%v is not a number", value))
	}

	if price < 0 {
		return nil, errs.NewValueIsOutOfRangeError(field, price, 0, "unbounded")
	}
	return price, nil
}

func toPaymentMethod(field string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%v is not a string", value))
	}
	method, err := order.ParsePaymentMethod(s)
	if err != nil {
		return nil, err
	}
	return string(method), nil
}

func toPaymentResult(field string, value any) (any, error) {
	var dto PaymentResultDTO
	switch v := value.(type) {
	case nil:
		return nil, nil
	case order.PaymentResult:
		dto = PaymentResultDTO(v)
	case *order.PaymentResult:
		if v == nil {
			return nil, nil
		}
		dto = PaymentResultDTO(*v)
	case map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
		}
		if err = json.Unmarshal(raw, &dto); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
		}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%v is not an object", value))
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return string(raw), nil
}

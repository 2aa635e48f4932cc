package domain

import "net/url"

// InvoiceForm is raw, untyped invoice input as submitted by a form.
// A nil field means the form did not carry that key at all.
type InvoiceForm struct {
	CustomerID *string
	Amount     *string
	Status     *string
}

func FormFromValues(v url.Values) InvoiceForm {
	return InvoiceForm{
		CustomerID: formValue(v, "customerId"),
		Amount:     formValue(v, "amount"),
		Status:     formValue(v, "status"),
	}
}

func formValue(v url.Values, key string) *string {
	if !v.Has(key) {
		return nil
	}
	s := v.Get(key)
	return &s
}

// Package timezone keeps every timestamp the back office shows or compares in one
// configured location (APP_TIMEZONE, IANA names such as "Europe/Paris"; UTC when unset).
//
// Date range filters compare calendar dates, so callers truncate with DateOf before
// comparing:
//
//	from := timezone.DateOf(criteria.From)
//	if timezone.DateOf(payment.PaymentDate).Before(from) { ... }
package timezone

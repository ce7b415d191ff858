package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/swiftbasket/backend/internal/domain/order"
)

// InvoiceSubject is the subject line for checkout invoices
const InvoiceSubject = "Your SwiftBasket order invoice"

// ResetSubject is the subject line for password reset mail
const ResetSubject = "Reset your SwiftBasket password"

// InvoiceBody renders the plain-text invoice for a placed order.
// Prices are shown in Rand with the line total per item, and the
// payment reference is username-orderID.
func InvoiceBody(username string, o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", username)
	b.WriteString("Thank you for shopping with SwiftBasket. Here is your invoice.\n\n")
	fmt.Fprintf(&b, "Order %s placed on %s\n\n", o.ID, o.CreatedAt.Format("2 January 2006"))

	for _, item := range o.Items {
		fmt.Fprintf(&b, "  %d x %s  R %s\n", item.Quantity, item.ProductName, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal due: R %s\n\n", o.Total.StringFixed(2))

	b.WriteString("Please pay by bank transfer to:\n")
	b.WriteString("  SwiftBasket (Pty) Ltd\n")
	b.WriteString("  First Mercantile Bank\n")
	b.WriteString("  Account 100 234 5678, Branch 051 001\n")
	fmt.Fprintf(&b, "  Reference: %s\n\n", o.Reference(username))

	b.WriteString("Your order ships once payment clears.\n\nThe SwiftBasket team\n")
	return b.String()
}

// ResetBody renders the plain-text password reset message
func ResetBody(username, resetLink string, validFor time.Duration) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", username)
	b.WriteString("Someone asked to reset the password for your SwiftBasket account.\n")
	fmt.Fprintf(&b, "Follow this link within %d minutes to choose a new password:\n\n", int(validFor.Minutes()))
	fmt.Fprintf(&b, "  %s\n\n", resetLink)
	b.WriteString("If this wasn't you, ignore this message and your password stays as it is.\n\nThe SwiftBasket team\n")
	return b.String()
}

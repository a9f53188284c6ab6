package ledger

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/DanillS/doors-web/internal/domain"
)

// OrderMessage renders cart lines as the WhatsApp order text the
// storefront sends to the shop.
func OrderMessage(lines []domain.CartLine) string {
	var b strings.Builder
	b.WriteString("Здравствуйте! Хочу оформить заказ:\n\n")

	totalItems := 0
	var totalAmount int64
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n\n")
		}
		lineTotal := line.Price * int64(line.Quantity)
		fmt.Fprintf(&b, "🏷️ Товар %d:\n📝 %s\n💰 Цена: %s ₽ × %d шт. = %s ₽\n📏 Размер: %s\n🎨 Материал: %s\n🌈 Цвет: %s",
			i+1, line.Name, groupDigits(line.Price), line.Quantity, groupDigits(lineTotal),
			line.Size, line.Material, line.Color)
		totalItems += line.Quantity
		totalAmount += lineTotal
	}

	fmt.Fprintf(&b, "\n\n📊 ИТОГО:\n📦 Общее количество: %d шт.\n💰 Сумма заказа: %s ₽\n\n", totalItems, groupDigits(totalAmount))
	b.WriteString("Прошу связаться со мной для подтверждения заказа и согласования деталей доставки и монтажа.")
	return b.String()
}

// WhatsAppLink builds the wa.me URL carrying the order text for phone.
func WhatsAppLink(phone string, lines []domain.CartLine) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(OrderMessage(lines))
}

// groupDigits renders n with spaces between thousand groups, the way
// the storefront displayed ruble amounts.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + " " + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

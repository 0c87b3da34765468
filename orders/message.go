package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"queijos-backend/whatsapp"
)

// renderMessage produces the pt-BR notification the restaurant receives
// for a new order: customer, delivery type, line items and the total.
func renderMessage(orderID uint, input CreateOrderInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*NOVO PEDIDO #%d*\n", orderID)
	fmt.Fprintf(&b, "*Cliente:* %s\n", input.CustomerName)
	fmt.Fprintf(&b, "*Telefone:* %s\n", input.CustomerPhone)

	tipo := "Retirada"
	if input.DeliveryMethod == "delivery" {
		tipo = "Entrega"
	}
	fmt.Fprintf(&b, "*Tipo:* %s\n", tipo)
	if input.DeliveryMethod == "delivery" && input.Address != "" {
		fmt.Fprintf(&b, "*Endereço:* %s\n", input.Address)
	}

	b.WriteString("\n*ITENS DO PEDIDO:*\n")
	for _, item := range input.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.Name, whatsapp.FormatCurrency(lineTotal))
	}

	fmt.Fprintf(&b, "\n*Total:* %s", whatsapp.FormatCurrency(input.TotalAmount))
	return b.String()
}

package discord

// User-facing message constants. The bot speaks German, matching the
// server community it runs in.
const (
	MsgUnknownCategory = "❓ **Unbekannte Kategorie**\nDiese Kategorie gibt es auf dem Markt nicht."
	MsgUnknownItem     = "❓ **Item nicht gefunden**\nVielleicht die Schreibweise prüfen?"
	MsgNoOrders        = "📭 **Keine Orders**\nFür dieses Item gibt es gerade keine Angebote."
	MsgMarketEmpty     = "📭 **Markt nicht erreichbar**\nGerade sind keine Marktdaten verfügbar, versuch es später nochmal."
	MsgGenericError    = "❌ Da ist etwas schiefgelaufen."

	LabelBuy          = "💰 Kaufen"
	LabelSell         = "🏷️ Verkaufen"
	LabelCategory     = "Kategorie"
	LabelActiveOrders = "Aktive Orders"
	LabelNoOffer      = "—"
	LabelDone         = "Fertig"

	FooterMarketBot = "OpSucht Markt"
)

package i18n

// countryLanguages maps public-facing storefront country codes to the
// internal language code of their message table.
var countryLanguages = map[string]string{
	"gb": "en",
	"us": "en",
	"ie": "en",
	"au": "en",
	"de": "de",
	"at": "de",
	"ch": "de",
	"fr": "fr",
	"dk": "da",
	"no": "no",
	"se": "sv",
	"fi": "fi",
}

// countryCurrencies maps storefront country codes to their display currency.
var countryCurrencies = map[string]string{
	"gb": "GBP",
	"us": "USD",
	"ie": "EUR",
	"au": "USD",
	"de": "EUR",
	"at": "EUR",
	"ch": "EUR",
	"fr": "EUR",
	"dk": "DKK",
	"no": "NOK",
	"se": "SEK",
	"fi": "EUR",
}

// messages holds the per-language text tables. English is the base table and
// must carry every key; the other languages may be partial and fall back to
// English at resolve time.
var messages = map[string]map[string]string{
	"en": {
		"product.addToCart":         "Add to Basket",
		"product.buyNow":            "Buy Now",
		"product.inStock":           "In Stock",
		"product.outOfStock":        "Currently unavailable",
		"product.freeDelivery":      "FREE delivery {date}",
		"product.ratings":           "{count} ratings",
		"product.boughtRecently":    "{count}+ bought in past month",
		"product.aboutItem":         "About this item",
		"product.quantity":          "Quantity",
		"product.secureTransaction": "Secure transaction",
		"product.shipsFrom":         "Ships from",
		"product.soldBy":            "Sold by",
		"reviews.title":             "Customer reviews",
		"reviews.verifiedPurchase":  "Verified Purchase",
		"reviews.helpful":           "{count} people found this helpful",
		"banner.dealOfTheDay":       "Deal of the Day",
		"banner.limitedTimeDeal":    "Limited time deal",
		"banner.discount":           "Save {percent}%",
		"cart.title":                "Shopping Basket",
		"checkout.proceed":          "Proceed to checkout",
	},
	"de": {
		"product.addToCart":         "In den Einkaufswagen",
		"product.buyNow":            "Jetzt kaufen",
		"product.inStock":           "Auf Lager",
		"product.outOfStock":        "Derzeit nicht verfügbar",
		"product.freeDelivery":      "GRATIS Lieferung {date}",
		"product.ratings":           "{count} Bewertungen",
		"product.boughtRecently":    "{count}+ Mal im letzten Monat gekauft",
		"product.aboutItem":         "Info zu diesem Artikel",
		"product.quantity":          "Menge",
		"product.secureTransaction": "Sicherer Bezahlvorgang",
		"product.shipsFrom":         "Versand durch",
		"product.soldBy":            "Verkauf durch",
		"reviews.title":             "Kundenrezensionen",
		"reviews.verifiedPurchase":  "Verifizierter Kauf",
		"banner.limitedTimeDeal":    "Befristetes Angebot",
		"banner.discount":           "{percent}% sparen",
		"cart.title":                "Einkaufswagen",
		"checkout.proceed":          "Zur Kasse gehen",
	},
	"fr": {
		"product.addToCart":         "Ajouter au panier",
		"product.buyNow":            "Acheter cet article",
		"product.inStock":           "En stock",
		"product.outOfStock":        "Actuellement indisponible",
		"product.freeDelivery":      "Livraison GRATUITE {date}",
		"product.ratings":           "{count} évaluations",
		"product.aboutItem":         "À propos de cet article",
		"product.quantity":          "Quantité",
		"product.secureTransaction": "Transaction sécurisée",
		"product.shipsFrom":         "Expédié par",
		"product.soldBy":            "Vendu par",
		"reviews.title":             "Commentaires client",
		"reviews.verifiedPurchase":  "Achat vérifié",
		"banner.limitedTimeDeal":    "Offre à durée limitée",
		"cart.title":                "Panier",
		"checkout.proceed":          "Passer la commande",
	},
	"da": {
		"product.addToCart":         "Læg i kurven",
		"product.buyNow":            "Køb nu",
		"product.inStock":           "På lager",
		"product.outOfStock":        "Ikke tilgængelig i øjeblikket",
		"product.freeDelivery":      "GRATIS levering {date}",
		"product.ratings":           "{count} bedømmelser",
		"product.aboutItem":         "Om denne vare",
		"product.quantity":          "Antal",
		"product.secureTransaction": "Sikker betaling",
		"reviews.title":             "Kundeanmeldelser",
		"banner.limitedTimeDeal":    "Tidsbegrænset tilbud",
		"cart.title":                "Indkøbskurv",
		"checkout.proceed":          "Gå til kassen",
	},
	"no": {
		"product.addToCart":         "Legg i handlekurven",
		"product.buyNow":            "Kjøp nå",
		"product.inStock":           "På lager",
		"product.outOfStock":        "Ikke tilgjengelig for øyeblikket",
		"product.freeDelivery":      "GRATIS levering {date}",
		"product.ratings":           "{count} vurderinger",
		"product.aboutItem":         "Om denne varen",
		"product.quantity":          "Antall",
		"product.secureTransaction": "Sikker betaling",
		"reviews.title":             "Kundeanmeldelser",
		"banner.limitedTimeDeal":    "Tidsbegrenset tilbud",
		"cart.title":                "Handlekurv",
		"checkout.proceed":          "Gå til kassen",
	},
	"sv": {
		"product.addToCart":         "Lägg i varukorgen",
		"product.buyNow":            "Köp nu",
		"product.inStock":           "I lager",
		"product.outOfStock":        "Inte tillgänglig för tillfället",
		"product.freeDelivery":      "GRATIS leverans {date}",
		"product.ratings":           "{count} betyg",
		"product.aboutItem":         "Om denna vara",
		"product.quantity":          "Antal",
		"product.secureTransaction": "Säker transaktion",
		"reviews.title":             "Kundrecensioner",
		"banner.limitedTimeDeal":    "Tidsbegränsat erbjudande",
		"cart.title":                "Varukorg",
		"checkout.proceed":          "Gå till kassan",
	},
	"fi": {
		"product.addToCart":         "Lisää ostoskoriin",
		"product.buyNow":            "Osta heti",
		"product.inStock":           "Varastossa",
		"product.outOfStock":        "Ei juuri nyt saatavilla",
		"product.freeDelivery":      "ILMAINEN toimitus {date}",
		"product.ratings":           "{count} arvostelua",
		"product.aboutItem":         "Tietoa tuotteesta",
		"product.quantity":          "Määrä",
		"product.secureTransaction": "Turvallinen maksutapahtuma",
		"reviews.title":             "Asiakasarvostelut",
		"banner.limitedTimeDeal":    "Määräaikainen tarjous",
		"cart.title":                "Ostoskori",
		"checkout.proceed":          "Siirry kassalle",
	},
}

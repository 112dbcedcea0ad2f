package steam

// RegisterKeyResponse is the JSON body returned by the key registration endpoint.
type RegisterKeyResponse struct {
	Success               int                  `json:"success"`
	PurchaseResultDetails *int                 `json:"purchase_result_details,omitempty"`
	PurchaseReceiptInfo   *PurchaseReceiptInfo `json:"purchase_receipt_info,omitempty"`
}

// PurchaseReceiptInfo carries the line items of a registration and, on some
// failures, a fallback result code.
type PurchaseReceiptInfo struct {
	ResultDetail *int       `json:"result_detail,omitempty"`
	LineItems    []LineItem `json:"line_items,omitempty"`
}

// LineItem is one product granted by a registration.
type LineItem struct {
	PackageID           int    `json:"packageid"`
	LineItemDescription string `json:"line_item_description"`
}

// UserData is the subset of the dynamic store user data the catalog needs.
type UserData struct {
	OwnedPackages []int `json:"rgOwnedPackages"`
	OwnedApps     []int `json:"rgOwnedApps"`
}

// App is one entry of the public app list.
type App struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

type appListResponse struct {
	AppList struct {
		Apps []App `json:"apps"`
	} `json:"applist"`
}

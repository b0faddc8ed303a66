package dto

type PurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items"`
}

type PurchaseItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

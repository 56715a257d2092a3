package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"Erro de Validação: o nome do item é obrigatório."`
}

// OutcomeResponse é o corpo devolvido por cada intenção sobre um item:
// o item resultante, o status derivado e a mensagem de confirmação.
// Quando a escrita remota falha, Category/Code descrevem o AdapterError e
// o item reflete o estado em memória já aplicado.
type OutcomeResponse struct {
	Code     int       `json:"code,omitempty" example:"502"`
	Category string    `json:"category,omitempty" example:"ADAPTER_ERROR"`
	Message  string    `json:"message" example:"Used 1 pieces of Tomatoes"`
	Item     *ItemView `json:"item,omitempty"`
}

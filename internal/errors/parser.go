package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user facing message.
type ErrorInfo struct {
	Code    string // error code (see codes.go)
	Message string // user facing message
}

// ParseError converts a raw error into a code and message safe to show the
// user. Sensitive driver details are never forwarded.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL errors

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 3. Network errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Falha na conexão com o serviço. Tente novamente em instantes",
		}
	}

	// 4. Fallback
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError handles unique constraint violations.
func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// duplicate CPF/CNPJ
	if strings.Contains(errLower, "tax_id") || strings.Contains(errLower, "idx_customers_tax_id") {
		return ErrorInfo{
			Code:    CustomerTaxIDExists,
			Message: "Já existe um cliente cadastrado com este CPF/CNPJ",
		}
	}

	// duplicate email
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este e-mail já está em uso",
		}
	}

	// a customer holds at most one row per sub-entity
	if strings.Contains(errLower, "customer_id") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Estes dados já foram cadastrados para o cliente",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Registro já existente. Tente novamente",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Registro já existente",
	}
}

// parseForeignKeyError handles foreign key constraint violations.
func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// delete blocked by dependent rows
	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "customer") || strings.Contains(context, "cliente") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "O cliente possui dados vinculados e não pode ser excluído",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Existem dados vinculados que impedem a exclusão",
		}
	}

	// insert referencing a missing row
	if strings.Contains(errLower, "customer_id") || strings.Contains(errLower, "fk_customers") {
		return ErrorInfo{
			Code:    CustomerNotFound,
			Message: "Cliente não encontrado",
		}
	}
	if strings.Contains(errLower, "financial_terms_id") || strings.Contains(errLower, "fk_financial_terms") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Condições financeiras não encontradas",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Registro referenciado não encontrado",
	}
}

// parseNotNullError handles not-null constraint violations.
func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "tax_id") {
		return ErrorInfo{Code: ValidationRequired, Message: "O CPF/CNPJ é obrigatório"}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "O e-mail é obrigatório"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "A senha é obrigatória"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "O nome é obrigatório"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Campo obrigatório não informado",
	}
}

// getNotFoundMessage picks a not-found message for the given context.
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "customer") || strings.Contains(contextLower, "cliente") {
		return "Cliente não encontrado"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "usuário") {
		return "Usuário não encontrado"
	}
	if strings.Contains(contextLower, "location") || strings.Contains(contextLower, "local") {
		return "Local de instalação não encontrado"
	}
	if strings.Contains(contextLower, "technical") || strings.Contains(contextLower, "técnic") {
		return "Configuração técnica não encontrada"
	}
	if strings.Contains(contextLower, "financial") || strings.Contains(contextLower, "financeir") {
		return "Condições financeiras não encontradas"
	}
	if strings.Contains(contextLower, "attorney") || strings.Contains(contextLower, "procura") {
		return "Procuração não encontrada"
	}

	return "Registro não encontrado"
}

// getDefaultErrorMessage picks a generic message for the given context.
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "cadastr") {
		return "Erro ao cadastrar. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "atualiz") {
		return "Erro ao atualizar. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "exclu") {
		return "Erro ao excluir. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "document") || strings.Contains(contextLower, "pdf") {
		return "Erro ao gerar o documento. Tente novamente em instantes"
	}

	return "Ocorreu um erro no servidor. Tente novamente em instantes"
}

// ParseAndRespond parses an error and writes the response in one call.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

package dialog

import "finbot/internal/core"

// Menu button labels; category buttons live in core next to their catalog.
const (
	ButtonRecordIncome   = "💰 Registrar Receita"
	ButtonRecordExpense  = "💸 Registrar Despesa"
	ButtonExit           = "🚪 Sair"
	ButtonNewTransaction = "📝 Nova Transação"
	ButtonFinish         = "🚪 Finalizar"
)

var (
	mainMenuKeyboard = [][]string{
		{ButtonRecordIncome},
		{ButtonRecordExpense},
		{ButtonExit},
	}

	finalMenuKeyboard = [][]string{
		{ButtonNewTransaction},
		{ButtonFinish},
	}
)

const (
	msgWelcome = "Olá! 👋 Vou ajudar você a registrar suas finanças.\n\nEscolha uma opção:"
	msgChoose  = "Escolha uma opção:"

	msgAskIncomeAmount  = "💰 Por favor, digite o valor da receita:\nExemplo: 3000.00"
	msgAskExpenseAmount = "💸 Por favor, digite o valor da despesa:\nExemplo: 50.90"

	msgInvalidOption    = "❌ Opção inválida! Por favor, escolha uma das opções:"
	msgInvalidAmount    = "❌ Por favor, digite um valor numérico válido!"
	msgNonPositive      = "❌ O valor deve ser maior que zero!"
	msgAskDescription   = "📝 Agora, digite uma descrição para esta transação:"
	msgAskCategory      = "Escolha a categoria:"
	msgWhatNext         = "O que deseja fazer agora?"
	msgGoodbye          = "👋 Obrigado por usar o bot! Para começar novamente, use o comando /start"
	msgCancelled        = "❌ Operação cancelada.\nPara começar novamente, use o comando /start"
	msgIdleHint         = "Use /start para registrar uma transação."
	msgRecordFailed     = "❌ Erro ao registrar a transação. Tente novamente mais tarde."
)

func typeLabel(t core.TransactionType) string {
	if t == core.TypeIncome {
		return "💰 Receita"
	}
	return "💸 Despesa"
}

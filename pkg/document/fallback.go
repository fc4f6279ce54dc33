// ABOUTME: Built-in example dataset served when the live source is unavailable
// ABOUTME: Twelve acts spanning every document type in 2024

package document

// Fallback returns a fresh copy of the built-in dataset
func Fallback() []Document {
	out := make([]Document, len(fallbackDocuments))
	copy(out, fallbackDocuments)
	return out
}

var fallbackDocuments = []Document{
	{
		ID:          "1",
		Type:        Ordinance,
		Number:      "001/2024",
		Title:       "Portaria de Nomeação de Servidores",
		Description: "Portaria que estabelece a nomeação de novos servidores públicos para diversos cargos na administração municipal.",
		Date:        "2024-01-15",
		URL:         "/documentos/portaria-001-2024.pdf",
	},
	{
		ID:          "2",
		Type:        OrdinaryLaw,
		Number:      "1.234/2024",
		Title:       "Lei do Orçamento Anual",
		Description: "Lei que estabelece o orçamento municipal para o exercício financeiro de 2024, incluindo receitas e despesas previstas.",
		Date:        "2024-02-10",
		URL:         "/documentos/lei-1234-2024.pdf",
	},
	{
		ID:          "3",
		Type:        Decree,
		Number:      "456/2024",
		Title:       "Decreto de Regulamentação do Trânsito",
		Description: "Decreto que regulamenta o trânsito de veículos pesados no centro da cidade durante horários comerciais.",
		Date:        "2024-03-05",
		URL:         "/documentos/decreto-456-2024.pdf",
	},
	{
		ID:          "4",
		Type:        ComplementaryLaw,
		Number:      "789/2024",
		Title:       "Lei Complementar do Plano Diretor",
		Description: "Lei complementar que estabelece diretrizes para o desenvolvimento urbano e uso do solo municipal.",
		Date:        "2024-03-20",
		URL:         "/documentos/lei-comp-789-2024.pdf",
	},
	{
		ID:          "5",
		Type:        Ordinance,
		Number:      "002/2024",
		Title:       "Portaria de Horário de Funcionamento",
		Description: "Portaria que define os horários de funcionamento dos órgãos públicos municipais durante o período de verão.",
		Date:        "2024-04-12",
		URL:         "/documentos/portaria-002-2024.pdf",
	},
	{
		ID:          "6",
		Type:        OrdinaryLaw,
		Number:      "1.567/2024",
		Title:       "Lei de Incentivo ao Turismo",
		Description: "Lei que cria incentivos fiscais para empresas do setor turístico que se instalarem no município.",
		Date:        "2024-05-08",
		URL:         "/documentos/lei-1567-2024.pdf",
	},
	{
		ID:          "7",
		Type:        Decree,
		Number:      "890/2024",
		Title:       "Decreto de Criação de Parque Municipal",
		Description: "Decreto que cria o Parque Municipal da Cidade, estabelecendo suas diretrizes de uso e conservação.",
		Date:        "2024-06-15",
		URL:         "/documentos/decreto-890-2024.pdf",
	},
	{
		ID:          "8",
		Type:        Ordinance,
		Number:      "003/2024",
		Title:       "Portaria de Comissão de Licitação",
		Description: "Portaria que nomeia os membros da comissão permanente de licitação para o biênio 2024-2025.",
		Date:        "2024-07-22",
		URL:         "/documentos/portaria-003-2024.pdf",
	},
	{
		ID:          "9",
		Type:        ComplementaryLaw,
		Number:      "234/2024",
		Title:       "Lei Complementar do Código Tributário",
		Description: "Lei complementar que atualiza o código tributário municipal, incluindo novos tributos e isenções.",
		Date:        "2024-08-30",
		URL:         "/documentos/lei-comp-234-2024.pdf",
	},
	{
		ID:          "10",
		Type:        Decree,
		Number:      "567/2024",
		Title:       "Decreto de Emergência Climática",
		Description: "Decreto que declara situação de emergência climática e estabelece medidas de prevenção e resposta.",
		Date:        "2024-09-18",
		URL:         "/documentos/decreto-567-2024.pdf",
	},
	{
		ID:          "11",
		Type:        OrdinaryLaw,
		Number:      "1.890/2024",
		Title:       "Lei de Proteção Animal",
		Description: "Lei que estabelece normas para proteção e bem-estar dos animais no município, incluindo penalidades por maus-tratos.",
		Date:        "2024-10-25",
		URL:         "/documentos/lei-1890-2024.pdf",
	},
	{
		ID:          "12",
		Type:        Ordinance,
		Number:      "004/2024",
		Title:       "Portaria de Protocolo Sanitário",
		Description: "Portaria que estabelece protocolos sanitários para estabelecimentos comerciais e eventos públicos.",
		Date:        "2024-11-14",
		URL:         "/documentos/portaria-004-2024.pdf",
	},
}

// Package locale holds the fixed strings the conversation engine needs in
// each supported response language, plus the prompt-facing language names.
package locale

import (
	"fmt"
	"strings"
)

type Language struct {
	Code             string
	PromptName       string
	Greeting         string // contains a {coin} placeholder
	DeepScan         string
	AnalysisComplete string
	AnalysisError    string
}

var languages = []Language{
	{
		Code:             "en",
		PromptName:       "English",
		Greeting:         "Hi! I'm your AI market analyst. Ask me anything about {coin}.",
		DeepScan:         "Run a deep scan on the current market structure.",
		AnalysisComplete: "Deep scan complete. Structured trend analysis attached.",
		AnalysisError:    "Analysis service is currently unavailable. Please try again later.",
	},
	{
		Code:             "zh-TW",
		PromptName:       "Traditional Chinese",
		Greeting:         "你好！我是你的 AI 市場分析師。關於 {coin} 有任何問題都可以問我。",
		DeepScan:         "對目前市場結構執行深度掃描。",
		AnalysisComplete: "深度掃描完成，結構化趨勢分析如下。",
		AnalysisError:    "分析服務目前無法使用，請稍後再試。",
	},
	{
		Code:             "ru",
		PromptName:       "Russian",
		Greeting:         "Привет! Я ваш ИИ-аналитик рынка. Спрашивайте меня о {coin}.",
		DeepScan:         "Запустить глубокое сканирование текущей структуры рынка.",
		AnalysisComplete: "Глубокое сканирование завершено. Структурный анализ тренда приложен.",
		AnalysisError:    "Сервис анализа временно недоступен. Попробуйте позже.",
	},
	{
		Code:             "ko",
		PromptName:       "Korean",
		Greeting:         "안녕하세요! 저는 AI 시장 분석가입니다. {coin}에 대해 무엇이든 물어보세요.",
		DeepScan:         "현재 시장 구조에 대한 딥 스캔을 실행합니다.",
		AnalysisComplete: "딥 스캔 완료. 구조화된 추세 분석이 첨부되었습니다.",
		AnalysisError:    "분석 서비스를 현재 이용할 수 없습니다. 나중에 다시 시도해 주세요.",
	},
	{
		Code:             "fr",
		PromptName:       "French",
		Greeting:         "Bonjour ! Je suis votre analyste de marché IA. Posez-moi vos questions sur {coin}.",
		DeepScan:         "Lancer un scan approfondi de la structure actuelle du marché.",
		AnalysisComplete: "Scan approfondi terminé. Analyse de tendance structurée jointe.",
		AnalysisError:    "Le service d'analyse est actuellement indisponible. Veuillez réessayer plus tard.",
	},
	{
		Code:             "id",
		PromptName:       "Indonesian",
		Greeting:         "Halo! Saya analis pasar AI Anda. Tanyakan apa saja tentang {coin}.",
		DeepScan:         "Jalankan pemindaian mendalam pada struktur pasar saat ini.",
		AnalysisComplete: "Pemindaian mendalam selesai. Analisis tren terstruktur terlampir.",
		AnalysisError:    "Layanan analisis sedang tidak tersedia. Silakan coba lagi nanti.",
	},
}

// Resolve returns the language for code, falling back to English for codes
// outside the supported set.
func Resolve(code string) Language {
	for _, l := range languages {
		if l.Code == code {
			return l
		}
	}
	return languages[0]
}

// GreetingFor substitutes the asset display into the seeded greeting.
func (l Language) GreetingFor(name, symbol string) string {
	return strings.ReplaceAll(l.Greeting, "{coin}", fmt.Sprintf("%s (%s)", name, symbol))
}

// Directive is appended verbatim to every free-text prompt.
func (l Language) Directive() string {
	return fmt.Sprintf("IMPORTANT: Respond strictly in %s.", l.PromptName)
}

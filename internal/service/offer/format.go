package offer

import "fmt"

// captionTemplate 텔레그램 Markdown(legacy) 형식의 게시용 캡션 템플릿입니다.
// 인자 순서: 제목, 가격, 할인, 원본 URL
const captionTemplate = "🛒 *%s*\n" +
	"💰 *Prezzo*: %s\n" +
	"🔻 *Sconto*: %s\n" +
	"👉 Affrettati, offerta da non perdere! 🚀\n" +
	"🔔🔈 Attiva le Notifiche! 🔔🔈\n" +
	"\n" +
	"👇 *Guarda l’offerta* 👇\n" +
	"%s"

// Format Record와 원본 URL로 게시용 캡션을 생성합니다.
// 필드 값을 검사하거나 가공하지 않고 그대로 치환하며, 같은 입력에 대해 항상 같은 결과를 반환합니다.
func Format(r Record, rawURL string) string {
	return fmt.Sprintf(captionTemplate, r.Title, r.Price, r.Discount, rawURL)
}

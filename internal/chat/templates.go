package chat

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Disclaimer is appended to every fully dispatched reply.
const Disclaimer = "\n\n⚠️ Not: Paylaşılan bilgiler kişisel analizler olup yatırım tavsiyesi niteliği taşımaz."

// UnknownEntityPrompt is returned when no instrument can be resolved,
// neither from the utterance nor from memory.
const UnknownEntityPrompt = "Hangi hisse veya varlık hakkında konuşuyoruz? (Örn: THY, Altın)"

// LowConfidenceReply is the clarification format used when the
// classifier's confidence is below threshold. Takes the entity code.
const LowConfidenceReply = "[%s] Bu soruyu tam anlayamadım, finansal bir analiz mi istiyorsunuz?"

// Reply templates. Indexed arguments: %[1]s is the instrument's display
// name unless noted otherwise.

var newsIntros = []string{
	"[HABER] %[1]s hakkında son gelişmelere göz atalım:",
	"[HABER] %[1]s ile ilgili güncel haberleri sizin için derledim:",
	"[HABER] İşte %[1]s piyasasında öne çıkan başlıklar:",
	"[HABER] %[1]s gündeminden önemli notları özetliyorum:",
	"[HABER] %[1]s cephesinde takip etmeniz gereken son haberler:",
}

var newsOutros = []string{
	"Daha detaylı bilgi için finansal haber kaynaklarını takip edebilirsiniz.",
	"Haber akışının fiyat üzerindeki etkisini yakından izlemenizi öneririm.",
	"Bu gelişmeleri yatırım stratejilerinizde göz önünde bulundurmalısınız.",
	"Güncel takas verileriyle bu haberleri birleştirmek faydalı olabilir.",
	"Piyasa bu haberleri henüz tam fiyatlamamış olabilir, temkinli olun.",
}

var newsEmpty = []string{
	"%[1]s hakkında şu an öne çıkan güncel bir haber akışı bulunmuyor.",
	"Sistemlerimde %[1]s ile ilgili son 24 saatte kritik bir gelişme tespit edemedim.",
	"%[1]s gündemi şu an oldukça sakin görünüyor.",
}

var newsErrors = []string{
	"Haber servisinde geçici bir sorun var, gelişmelere şu an erişilemiyor.",
	"Haber akışı çekilirken teknik bir aksaklık yaşandı.",
	"Haber kaynaklarına erişim sağlanamadı, takas verilerini inceleyebilirsiniz.",
}

var profileIntros = []string{
	"📊 **%[1]s Finansal Karnesi**\n",
	"🏢 İşte **%[1]s** için temel analiz özetim:\n",
	"🔍 **%[1]s** finansal sağlığına yakından bakalım:\n",
	"📋 Sizin için **%[1]s** şirket profilini inceledim:\n",
	"💼 **%[1]s** temel verileri şu şekilde:\n",
}

var profileEmpty = []string{
	"%[1]s için detaylı şirket bilgisine şu an ulaşılamıyor.",
	"Şirket profili verisi geçici olarak erişilemez durumda.",
	"%[1]s hakkında detaylı bilgi için resmi kaynakları incelemenizi öneririm.",
}

// %[2]s is the formatted price.
var priceReplies = []string{
	"[FİYAT] %[1]s anlık işlem fiyatı: %[2]s",
	"[FİYAT] %[1]s şu an piyasada %[2]s seviyesinden alıcı buluyor.",
	"[FİYAT] Güncel verilere göre %[1]s: %[2]s",
	"[FİYAT] %[1]s için son kaydedilen rakam: %[2]s",
}

var priceErrors = []string{
	"%[1]s için anlık fiyat bilgisi şu an alınamıyor. Lütfen daha sonra tekrar deneyin.",
	"Fiyat servislerimizde geçici bir yoğunluk var, %[1]s verisine ulaşamadım.",
	"Piyasa verileri şu an güncelleniyor, %[1]s fiyatını birazdan tekrar sorabilirsiniz.",
}

var forecastIntros = []string{
	"📈 **%[1]s Piyasa Trend ve Beklenti Analizi**\n",
	"🎯 **%[1]s** için piyasa profesyonelleri ne düşünüyor?\n",
	"🔮 **%[1]s** gelecek projeksiyonu ve analist hedefleri:\n",
	"🔭 **%[1]s** yatırımcıları için orta vadeli beklentiler:\n",
}

var technicalIntros = []string{
	"🔍 **%[1]s Teknik Analiz Raporu**\n",
	"📈 **%[1]s** grafiklerini sizin için taradım:\n",
	"⚙️ İşte **%[1]s** için matematiksel göstergelerin durumu:\n",
	"🔢 **%[1]s** teknik indikatör özeti:\n",
	"📉 **%[1]s** fiyat hareketleri ve sinyaller:\n",
}

var summaryLeads = []string{
	"\n💡 **Özet Değerlendirme:** ",
	"\n📌 **Teknik Görünüm:** ",
	"\n🤖 **Yapay Zeka Yorumu:** ",
	"\n📝 **Sonuç Olarak:** ",
	"\n🧠 **Analiz Notu:** ",
}

// %[2]s is the time reference.
var buyWarnings = []string{
	"[UYARI] %[1]s için alım kararı vermeden önce risk toleransınızı mutlaka gözden geçirin.",
	"[UYARI] %[1]s almayı düşünüyorsanız, kademeli alım stratejisi maliyet avantajı sağlayabilir.",
	"[UYARI] Alım yönündeki niyetiniz %[2]s odaklıysa, temel analiz verileri daha kritik hale gelir.",
}

// Picker selects reply variants. A fixed seed makes replies
// deterministic in tests.
type Picker struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewPicker creates a picker. Seed 0 means "seed from the clock".
func NewPicker(seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Picker{rand: rand.New(rand.NewSource(seed))}
}

// Pick returns one of the options.
func (p *Picker) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return options[p.rand.Intn(len(options))]
}

// turkishPrinter formats numbers with Turkish separators: decimal comma,
// dot grouping ("1.234,56").
var turkishPrinter = message.NewPrinter(language.Turkish)

// FormatPrice renders a price with two decimals and its unit,
// e.g. "284,50 TL".
func FormatPrice(value float64, unit string) string {
	s := turkishPrinter.Sprintf("%.2f", value)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// FormatDecimal renders a bare number with two decimals.
func FormatDecimal(value float64) string {
	return turkishPrinter.Sprintf("%.2f", value)
}

// FormatCount renders an integer with grouping separators.
func FormatCount(value int64) string {
	return turkishPrinter.Sprintf("%d", value)
}

var recommendationLabels = map[string]string{
	"Strong Buy":   "Güçlü AL 🟢",
	"Buy":          "AL 🟢",
	"Hold":         "TUT 🟡",
	"Sell":         "SAT 🔴",
	"Strong Sell":  "Güçlü SAT 🔴",
	"Underperform": "Endeks Altı 📉",
	"Outperform":   "Endeks Üzeri 📈",
}

var englishTitle = cases.Title(language.English)

// LocalizeRecommendation maps a provider consensus key like "strong_buy"
// to its Turkish display label. Unknown keys pass through title-cased.
func LocalizeRecommendation(key string) string {
	if key == "" {
		key = "nötr"
	}
	normalized := englishTitle.String(strings.ReplaceAll(key, "_", " "))
	if label, ok := recommendationLabels[normalized]; ok {
		return label
	}
	return normalized
}

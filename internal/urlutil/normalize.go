package urlutil

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// trackingParams — фиксированный денайлист рекламных/аналитических параметров.
// Семейство utm_* отсекается по префиксу отдельно.
var trackingParams = map[string]struct{}{
	"gclid":   {},
	"fbclid":  {},
	"yclid":   {},
	"msclkid": {},
	"igshid":  {},
	"mc_cid":  {},
	"mc_eid":  {},
	"_ga":     {},
	"cmpid":   {},
	"ref":     {},
}

// Normalize канонизирует URL: убирает трекинговые параметры и один
// завершающий слэш (кроме корневого пути). Функция идемпотентна и никогда
// не возвращает ошибку: если строка не парсится как абсолютный URL,
// возвращается исходная строка без изменений.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return trimmed
	}

	q := u.Query()
	for key := range q {
		if isTrackingParam(key) {
			q.Del(key)
		}
	}
	// Пересобираем строку запроса только если что-то осталось:
	// пустой query не должен оставлять висячий «?».
	u.RawQuery = ""
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	_, ok := trackingParams[key]
	return ok
}

// ItemID — стабильная идентичность записи: hex-префикс SHA-1 от
// канонизированного URL. Два URL с одинаковой канонической формой
// всегда дают один и тот же ID.
func ItemID(canonicalURL string) string {
	sum := sha1.Sum([]byte(canonicalURL))
	return hex.EncodeToString(sum[:8])
}

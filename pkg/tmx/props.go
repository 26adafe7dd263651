package tmx

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/threatforge/threatforge/pkg/model"
)

// propertyEntryTag is the local name of one typed entry in the external
// property dictionary.
const propertyEntryTag = "anyType"

// decodeProperties converts the external nested property dictionary into a
// flat record. Per entry the machine Name is preferred over the human
// DisplayName as the record key. Values are coerced by their declared kind:
// plain text passes through, booleans are read from "true"/"false"
// literals, and indexed-list selections become integer indexes.
//
// An entry with neither name nor value is skipped. An entry with a name but
// an empty value keeps an empty string; downstream consumers rely on key
// presence. The container may be nil, which decodes to an empty record.
func decodeProperties(container *etree.Element, warnf warnFunc) model.Properties {
	props := model.Properties{}
	if container == nil {
		return props
	}

	for _, entry := range container.ChildElements() {
		if entry.Tag != propertyEntryTag {
			continue
		}

		key := textField(entry, "Name")
		if key == "" {
			key = textField(entry, "DisplayName")
		}

		valElem := lookupField(entry, "PropertyValue")
		val := ""
		if valElem != nil {
			val = strings.TrimSpace(valElem.Text())
		}

		if key == "" && val == "" {
			continue
		}
		if key == "" {
			warnf("skipping property entry with value %q but no name", val)
			continue
		}

		if sel := textField(entry, "SelectedIndex"); sel != "" {
			idx, err := strconv.Atoi(sel)
			if err != nil {
				warnf("property %q: bad selected index %q, keeping raw value", key, sel)
				props[key] = val
				continue
			}
			props[key] = idx
			continue
		}

		if isBooleanValue(valElem) {
			props[key] = val == "true"
			continue
		}

		props[key] = val
	}

	return props
}

// isBooleanValue reports whether a property value element declares itself
// boolean via its type attribute.
func isBooleanValue(valElem *etree.Element) bool {
	return strings.EqualFold(typeDiscriminator(valElem), "boolean")
}

// encodeProperties renders a flat record as external property entries.
// Every scalar value becomes one plain-text entry named by its key;
// non-scalar values are silently dropped. Keys are emitted in sorted order
// so output is deterministic.
//
// The round trip is intentionally lossy: booleans and numbers come back as
// strings, and the indexed-list kind is never re-emitted.
func encodeProperties(props model.Properties) string {
	if len(props) == 0 {
		return ""
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		if _, ok := scalarText(props[k]); !ok {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		text, _ := scalarText(props[k])
		name := escapeXML(k)
		fmt.Fprintf(&b, "<a:anyType><b:DisplayName>%s</b:DisplayName><b:Name>%s</b:Name><b:Value>%s</b:Value></a:anyType>",
			name, name, escapeXML(text))
	}
	return b.String()
}

// scalarText renders a scalar property value as its external plain-text
// form. The second return is false for non-scalar values, which the encoder
// drops.
func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}

// xmlEscaper rewrites the five XML metacharacters as entities. Applied to
// every piece of element content the serializer emits.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

package overlay

import (
	"time"

	"github.com/lexread/lexread/internal/apperrors"
	"github.com/lexread/lexread/internal/language"
)

// MsgTranslationFailed is shown for every backend failure.
const MsgTranslationFailed = "Translation failed. Please check your network or API key."

// ToastDuration is how long a toast stays visible.
const ToastDuration = 2 * time.Second

type ToastKind int

const (
	ToastSourcePasted ToastKind = iota
	ToastTranslationCopied
	ToastClipboardDenied
	ToastNothingToCopy
)

// ToastText returns the toast for kind, localized for Chinese and Japanese
// targets.
func ToastText(kind ToastKind, targetLanguage string) string {
	cjk := language.UsesHan(targetLanguage)
	switch kind {
	case ToastSourcePasted:
		if cjk {
			return "原文已粘贴~"
		}
		return "Source Pasted~"
	case ToastTranslationCopied:
		if cjk {
			return "译文已拷贝~"
		}
		return "Translation Copied~"
	case ToastNothingToCopy:
		if cjk {
			return "暂无译文~"
		}
		return "Nothing to copy~"
	default:
		return "Clipboard access denied"
	}
}

// errorMessage maps a translation failure to the text shown in the target
// pane. Empty input and cancellation are not surfaced.
func errorMessage(err error) string {
	switch {
	case err == nil, apperrors.Is(err, apperrors.KindEmptyInput), apperrors.Is(err, apperrors.KindCanceled):
		return ""
	case apperrors.Is(err, apperrors.KindMissingCredential):
		return apperrors.PublicMessage(err)
	default:
		return MsgTranslationFailed
	}
}

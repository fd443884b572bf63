package i18n

import "golang.org/x/text/language"

// Message keys. The key doubles as the English text and format string.
const (
	Untitled       = "Untitled"
	SaveChanges    = "Save changes to %s?"
	SaveChangesHdr = "Unsaved changes"
	Opened         = "Opened %s"
	OpenFailed     = "Could not open %s: %v"
	Saved          = "Saved %s"
	SaveFailed     = "Save failed: %v"
	NotFound       = "Cannot find \"%s\""
	Replaced       = "Replaced %d occurrence(s)"
	Zoom           = "Zoom %d%%"
	ZoomRejected   = "Zoom must be between %d%% and %d%%"
	Position       = "Ln %d, Col %d"
	FontStatus     = "%s, %.0f pt"
	FontFailed     = "Font failed: %v"
	RecentCleared  = "Recent files cleared"
	LanguageSet    = "Language: %s"
	About          = "%s %s, a plain-text editor"
	Find           = "Find"
	ReplaceWith    = "Replace"
	GoToLine       = "Go to line"
	MatchCase      = "Match case"
	WholeWord      = "Whole word"
	On             = "on"
	Off            = "off"
	WordWrap       = "Word wrap %s"
	LineNumbers    = "Line numbers %s"
	StatusBar      = "Status bar %s"
	Recent         = "Recent files"
	NoRecent       = "No recent files"
	Clipboard      = "Clipboard failed: %v"
	Help           = "Ctrl+N new  Ctrl+O open  Ctrl+S save  Ctrl+W close  Ctrl+F find  Ctrl+H replace  Ctrl+G go to  F1 about"
)

var allKeys = []string{
	Untitled, SaveChanges, SaveChangesHdr, Opened, OpenFailed, Saved, SaveFailed,
	NotFound, Replaced, Zoom, ZoomRejected, Position, FontStatus, FontFailed,
	RecentCleared, LanguageSet, About, Find, ReplaceWith, GoToLine, MatchCase,
	WholeWord, On, Off, WordWrap, LineNumbers, StatusBar, Recent, NoRecent,
	Clipboard, Help,
}

var translations = map[language.Tag]map[string]string{
	language.French: {
		Untitled:       "Sans titre",
		SaveChanges:    "Enregistrer les modifications de %s ?",
		SaveChangesHdr: "Modifications non enregistrées",
		Opened:         "%s ouvert",
		OpenFailed:     "Impossible d'ouvrir %s : %v",
		Saved:          "%s enregistré",
		SaveFailed:     "Échec de l'enregistrement : %v",
		NotFound:       "« %s » introuvable",
		Replaced:       "%d occurrence(s) remplacée(s)",
		Zoom:           "Zoom %d %%",
		ZoomRejected:   "Le zoom doit être compris entre %d %% et %d %%",
		Position:       "Ln %d, Col %d",
		FontStatus:     "%s, %.0f pt",
		FontFailed:     "Échec de la police : %v",
		RecentCleared:  "Fichiers récents effacés",
		LanguageSet:    "Langue : %s",
		About:          "%s %s, un éditeur de texte brut",
		Find:           "Rechercher",
		ReplaceWith:    "Remplacer",
		GoToLine:       "Aller à la ligne",
		MatchCase:      "Respecter la casse",
		WholeWord:      "Mot entier",
		On:             "activé",
		Off:            "désactivé",
		WordWrap:       "Retour à la ligne %s",
		LineNumbers:    "Numéros de ligne %s",
		StatusBar:      "Barre d'état %s",
		Recent:         "Fichiers récents",
		NoRecent:       "Aucun fichier récent",
		Clipboard:      "Échec du presse-papiers : %v",
	},
	language.German: {
		Untitled:       "Unbenannt",
		SaveChanges:    "Änderungen an %s speichern?",
		SaveChangesHdr: "Ungespeicherte Änderungen",
		Opened:         "%s geöffnet",
		OpenFailed:     "%s konnte nicht geöffnet werden: %v",
		Saved:          "%s gespeichert",
		SaveFailed:     "Speichern fehlgeschlagen: %v",
		NotFound:       "„%s“ nicht gefunden",
		Replaced:       "%d Vorkommen ersetzt",
		Zoom:           "Zoom %d %%",
		ZoomRejected:   "Zoom muss zwischen %d %% und %d %% liegen",
		Position:       "Z %d, Sp %d",
		FontStatus:     "%s, %.0f pt",
		FontFailed:     "Schriftart fehlgeschlagen: %v",
		RecentCleared:  "Zuletzt geöffnete Dateien gelöscht",
		LanguageSet:    "Sprache: %s",
		About:          "%s %s, ein Editor für reinen Text",
		Find:           "Suchen",
		ReplaceWith:    "Ersetzen",
		GoToLine:       "Gehe zu Zeile",
		MatchCase:      "Groß-/Kleinschreibung",
		WholeWord:      "Ganzes Wort",
		On:             "an",
		Off:            "aus",
		WordWrap:       "Zeilenumbruch %s",
		LineNumbers:    "Zeilennummern %s",
		StatusBar:      "Statusleiste %s",
		Recent:         "Zuletzt geöffnet",
		NoRecent:       "Keine zuletzt geöffneten Dateien",
		Clipboard:      "Zwischenablage fehlgeschlagen: %v",
	},
	language.SimplifiedChinese: {
		Untitled:       "无标题",
		SaveChanges:    "是否保存对 %s 的更改？",
		SaveChangesHdr: "未保存的更改",
		Opened:         "已打开 %s",
		OpenFailed:     "无法打开 %s：%v",
		Saved:          "已保存 %s",
		SaveFailed:     "保存失败：%v",
		NotFound:       "找不到“%s”",
		Replaced:       "已替换 %d 处",
		Zoom:           "缩放 %d%%",
		ZoomRejected:   "缩放必须介于 %d%% 和 %d%% 之间",
		Position:       "第 %d 行，第 %d 列",
		FontStatus:     "%s，%.0f 磅",
		FontFailed:     "字体加载失败：%v",
		RecentCleared:  "已清除最近的文件",
		LanguageSet:    "语言：%s",
		About:          "%s %s，纯文本编辑器",
		Find:           "查找",
		ReplaceWith:    "替换",
		GoToLine:       "转到行",
		MatchCase:      "区分大小写",
		WholeWord:      "全字匹配",
		On:             "开",
		Off:            "关",
		WordWrap:       "自动换行：%s",
		LineNumbers:    "行号：%s",
		StatusBar:      "状态栏：%s",
		Recent:         "最近的文件",
		NoRecent:       "没有最近的文件",
		Clipboard:      "剪贴板操作失败：%v",
	},
}

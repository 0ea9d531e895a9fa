package cssaudit

import "strings"

// Built-in classification tables. They are plain data; DefaultRuleConfig
// copies them so callers can extend the result freely.

// stateClasses are toggled at runtime by scripts and never appear literally
// in every state the markup can be in.
var stateClasses = []string{
	"active", "open", "opened", "closed", "visible", "hidden", "show", "shown",
	"hide", "collapsed", "expanded", "selected", "disabled", "checked",
	"focused", "loading", "loaded", "is-active", "is-open", "is-visible",
	"is-hidden", "is-loading", "is-disabled", "has-error", "error", "success",
	"current", "in", "fade", "sticky", "dragging", "dark", "light",
}

// structuralPatterns cover class families generated by widgets, animation
// libraries, icon fonts and directional spacing helpers.
var structuralPatterns = []string{
	`^modal`,
	`^tooltip`,
	`^popover`,
	`^dropdown-menu`,
	`^toast`,
	`^animate(__|-)`,
	`^animated$`,
	`^(fa|fas|far|fab|fal)$`,
	`^fa-`,
	`^bi-`,
	`^icon-`,
	`^material-icons`,
	`^glyphicon`,
	`^swiper-`,
	`^slick-`,
	`^-?[mp][trblxyse]?-(\d|px|auto|\[)`,
	`^(space|gap)-[xy]?-?\d`,
}

// utilityPalette and utilityColorProperties combine into the color utility
// pattern (bg-blue-500, text-white, border-rose-300/50, ...)
var utilityPalette = []string{
	"slate", "gray", "zinc", "neutral", "stone", "red", "orange", "amber",
	"yellow", "lime", "green", "emerald", "teal", "cyan", "sky", "blue",
	"indigo", "violet", "purple", "fuchsia", "pink", "rose", "black", "white",
	"transparent", "current", "inherit",
}

var utilityColorProperties = []string{
	"bg", "text", "border", "border-[trblxy]", "ring", "ring-offset", "fill",
	"stroke", "from", "via", "to", "divide", "placeholder", "outline",
	"shadow", "accent", "caret", "decoration",
}

// variantModifiers prefix a utility with a condition (md:flex, hover:bg-x)
var variantModifiers = []string{
	"dark", "sm", "md", "lg", "xl", "2xl", "max-sm", "max-md", "max-lg",
	"max-xl", "hover", "focus", "focus-within", "focus-visible", "active",
	"visited", "disabled", "enabled", "checked", "required", "invalid",
	"first", "last", "odd", "even", "only", "empty", "before", "after",
	"placeholder", "file", "marker", "selection", "first-line",
	"first-letter", "backdrop", "motion-safe", "motion-reduce", "print",
	"portrait", "landscape", "rtl", "ltr", "open", `group-[a-z-]+`,
	`peer-[a-z-]+`, `aria-[a-z-]+`, `data-\[[^\]]+\]`, `supports-\[[^\]]+\]`,
}

// Utility value vocabulary shared by the framework table
const (
	spacingValue   = `(\d+(\.\d+)?|px|\[[^\]]+\])`
	fractionValue  = `(\d+(\.\d+)?|\d+/\d+|px|auto|full|\[[^\]]+\])`
	integerValue   = `(\d+|\[[^\]]+\])`
	shadowSizes    = `(sm|md|lg|xl|2xl|3xl|inner|none)`
	roundedCorners = `(t|r|b|l|s|e|tl|tr|br|bl|ss|se|es|ee)`
)

// frameworkPatterns is the utility-class framework table. Every row is
// anchored on both ends to the utility's own value vocabulary so a
// hand-written name sharing a prefix (border-card, order-summary) is not
// mistaken for a generated one.
var frameworkPatterns = []string{
	// Layout
	`^(container|box-border|box-content|isolate|isolation-auto)$`,
	`^(float|clear)-(left|right|none|both|start|end)$`,
	`^object-(contain|cover|fill|none|scale-down|bottom|center|left|right|top|left-top|left-bottom|right-top|right-bottom)$`,
	`^overflow(-[xy])?-(auto|hidden|clip|visible|scroll)$`,
	`^overscroll(-[xy])?-(auto|contain|none)$`,
	`^columns-(\d+|auto|3xs|2xs|xs|sm|md|lg|xl|[2-7]xl|\[[^\]]+\])$`,
	`^aspect-(auto|square|video|\d+/\d+|\[[^\]]+\])$`,
	`^break-(before|after)-(auto|avoid|all|avoid-page|page|left|right|column)$`,
	`^break-inside-(auto|avoid|avoid-page|avoid-column)$`,
	// Display
	`^(block|inline-block|inline|flex|inline-flex|grid|inline-grid|table|table-row|table-cell|contents|flow-root|list-item|hidden)$`,
	// Positioning
	`^(static|fixed|absolute|relative|sticky)$`,
	`^-?(inset|inset-[xy]|top|right|bottom|left|start|end)-` + fractionValue + `$`,
	`^-?z-(\d+|auto|\[[^\]]+\])$`,
	// Flex & grid
	`^flex-(row|row-reverse|col|col-reverse|wrap|wrap-reverse|nowrap|1|auto|initial|none)$`,
	`^(flex-)?(grow|shrink)(-0)?$`,
	`^-?order-(\d+|first|last|none|\[[^\]]+\])$`,
	`^basis-` + fractionValue + `$`,
	`^grid-(cols|rows)-(\d+|none|subgrid|\[[^\]]+\])$`,
	`^grid-flow-(row|col|dense|row-dense|col-dense)$`,
	`^(col|row)-(auto|span-(\d+|full)|start-(\d+|auto)|end-(\d+|auto))$`,
	`^(justify|content|items|self|place-content|place-items|place-self)-(start|end|center|between|around|evenly|stretch|baseline|normal|auto)$`,
	// Spacing & sizing
	`^-?[mp][trblxyse]?-(\d+(\.\d+)?|px|auto|\[[^\]]+\])$`,
	`^-?space-[xy]-(\d+(\.\d+)?|px|reverse)$`,
	`^gap(-[xy])?-` + spacingValue + `$`,
	`^(w|h|min-w|min-h|max-w|max-h|size)-(\d+(\.\d+)?|\d+/\d+|px|auto|full|screen|min|max|fit|svh|lvh|dvh|none|prose|xs|sm|md|lg|xl|[2-7]xl|\[[^\]]+\])$`,
	// Typography
	`^font-(sans|serif|mono|thin|extralight|light|normal|medium|semibold|bold|extrabold|black)$`,
	`^text-(xs|sm|base|lg|xl|[2-9]xl|left|center|right|justify|start|end|wrap|nowrap|balance|pretty|ellipsis|clip)$`,
	`^(italic|not-italic|uppercase|lowercase|capitalize|normal-case|truncate|underline|overline|line-through|no-underline|antialiased|subpixel-antialiased)$`,
	`^leading-(\d+|none|tight|snug|normal|relaxed|loose|\[[^\]]+\])$`,
	`^tracking-(tighter|tight|normal|wide|wider|widest|\[[^\]]+\])$`,
	`^indent-` + spacingValue + `$`,
	`^align-(baseline|top|middle|bottom|text-top|text-bottom|sub|super)$`,
	`^whitespace-(normal|nowrap|pre|pre-line|pre-wrap|break-spaces)$`,
	`^break-(normal|words|all|keep)$`,
	`^hyphens-(none|manual|auto)$`,
	`^decoration-(solid|double|dotted|dashed|wavy|clone|slice|auto|from-font|\d+)$`,
	`^underline-offset-(auto|\d+)$`,
	`^line-clamp-(\d+|none)$`,
	`^list-(none|disc|decimal|inside|outside|image-none)$`,
	// Background
	`^bg-(fixed|local|scroll|clip-(border|padding|content|text)|origin-(border|padding|content)|no-repeat|repeat(-x|-y|-round|-space)?|cover|contain|auto|center|top|bottom|left|right|left-top|left-bottom|right-top|right-bottom|none|gradient-to-(t|tr|r|br|b|bl|l|tl)|opacity-\d+)$`,
	`^(from|via|to)-\d+%$`,
	// Borders
	`^rounded(-` + roundedCorners + `)?(-(none|sm|md|lg|xl|2xl|3xl|full|\[[^\]]+\]))?$`,
	`^border(-[xytrblse])?(-` + integerValue + `)?$`,
	`^border-(solid|dashed|dotted|double|hidden|none)$`,
	`^divide-([xy](-(\d+|reverse))?|solid|dashed|dotted|double|none)$`,
	`^outline(-(none|dashed|dotted|double|\d+|offset-\d+))?$`,
	`^ring(-(\d+|inset|offset-\d+))?$`,
	// Effects & filters
	`^shadow(-` + shadowSizes + `)?$`,
	`^opacity-` + integerValue + `$`,
	`^(mix-blend|bg-blend)-(normal|multiply|screen|overlay|darken|lighten|color-dodge|color-burn|hard-light|soft-light|difference|exclusion|hue|saturation|color|luminosity|plus-lighter)$`,
	`^(blur|drop-shadow)(-(none|sm|md|lg|xl|2xl|3xl))?$`,
	`^-?(brightness|contrast|saturate|hue-rotate)-` + integerValue + `$`,
	`^(grayscale|invert|sepia)(-0)?$`,
	`^backdrop-(blur|brightness|contrast|grayscale|hue-rotate|invert|opacity|saturate|sepia)(-(\d+|none|sm|md|lg|xl|2xl|3xl))?$`,
	`^filter(-none)?$`,
	// Tables
	`^(border-collapse|border-separate|table-auto|table-fixed|caption-top|caption-bottom)$`,
	`^border-spacing(-[xy])?-(\d+(\.\d+)?|px)$`,
	// Transitions & animation
	`^transition(-(all|colors|opacity|shadow|transform|none))?$`,
	`^(duration|delay)-` + integerValue + `$`,
	`^ease-(linear|in|out|in-out)$`,
	`^animate-(none|spin|ping|pulse|bounce)$`,
	`^-?(scale(-[xy])?|rotate|skew-[xy])-` + integerValue + `$`,
	`^-?translate-[xy]-` + fractionValue + `$`,
	`^(transform|transform-gpu|transform-none)$`,
	`^origin-(center|top|top-right|right|bottom-right|bottom|bottom-left|left|top-left)$`,
	// Interactivity
	`^cursor-(auto|default|pointer|wait|text|move|help|not-allowed|none|context-menu|progress|cell|crosshair|vertical-text|alias|copy|no-drop|grab|grabbing|all-scroll|col-resize|row-resize|[nesw]{1,2}-resize|zoom-in|zoom-out)$`,
	`^pointer-events-(none|auto)$`,
	`^resize(-(none|x|y))?$`,
	`^snap-(start|end|center|align-none|normal|always|none|x|y|both|mandatory|proximity)$`,
	`^touch-(auto|none|pan-x|pan-left|pan-right|pan-y|pan-up|pan-down|pinch-zoom|manipulation)$`,
	`^will-change-(auto|scroll|contents|transform)$`,
	`^appearance-(none|auto)$`,
	`^select-(none|text|all|auto)$`,
	`^scroll-(auto|smooth|[mp][trblxyse]?-(\d+(\.\d+)?|px))$`,
	// SVG
	`^(fill|stroke)-(none|current|\d)$`,
	// Accessibility
	`^(sr-only|not-sr-only|forced-color-adjust-auto|forced-color-adjust-none)$`,
	// Visibility
	`^(visible|invisible|collapse)$`,
	// Palette x property
	`^(` + strings.Join(utilityColorProperties, "|") + `)-(` + strings.Join(utilityPalette, "|") + `)(-\d{2,3})?(/\d{1,3})?$`,
	// Variant modifiers
	`^((` + strings.Join(variantModifiers, "|") + `):)+\S+$`,
	// Arbitrary values and properties
	`^-?[a-z][a-z0-9-]*-\[[^\]]+\]$`,
	`^\[[a-z-]+:[^\]]+\]$`,
}

// responsivePatterns encode breakpoint and device-size vocabulary
var responsivePatterns = []string{
	`^(mobile|tablet|desktop|phone|handheld|widescreen)[-_]`,
	`[-_](mobile|tablet|desktop|phone|handheld|widescreen)$`,
	`[-_](mobile|tablet|desktop|phone)[-_]`,
	`^(xs|sm|md|lg|xl|xxl|2xl)[-_]`,
	`[-_](xs|sm|md|lg|xl|xxl|2xl)$`,
	`[-_](xs|sm|md|lg|xl|xxl|2xl)[-_]`,
	`(?i)responsive`,
	`(?i)breakpoint`,
	`(?i)screen`,
}

// DefaultRuleConfig returns the built-in classification tables
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Allow:              append([]string(nil), stateClasses...),
		AllowPatterns:      append([]string(nil), structuralPatterns...),
		FrameworkPatterns:  append([]string(nil), frameworkPatterns...),
		ResponsivePatterns: append([]string(nil), responsivePatterns...),
	}
}

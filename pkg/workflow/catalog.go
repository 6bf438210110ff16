package workflow

// Project catalog offered as buttons. Any entry can also be typed in as
// custom free text.
var (
	Phases = []string{"1", "2", "3", "4", "5", "Песцовое", "КПРA"}

	Objects = []string{
		"Скважины", "Кустовые площадки", "Площадочные объекты",
		"Линейная часть", "Другое",
	}

	Categories = []string{
		"Проектное управление", "Стоимостной инжиниринг", "ГиР",
		"Операционная деятельность", "Строительство", "Закупки",
		"Инжиниринг", "Бурение", "ПБ",
	}
)

// Button labels for the five probability bands. The stored percent for each
// level comes from scoring.ProbabilityBand, not from these labels.
var probabilityLabels = [5]string{"<10%", "10-20%", "20-50%", "50-75%", ">75%"}

// Package fixture: тестовый снимок портала и фейковый транспорт для тестов пакетов ядра.
package fixture

import (
	"strings"
	"time"
)

// Даты, на которые в снимке есть планы.
const (
	DayBasic    = "2024-01-10" // один урок 08:00–08:45 и запись без заголовка
	DayFull     = "2024-01-11" // несколько уроков, онлайн-урок, неизвестный учитель 99
	DayNoSubj   = "2024-01-12" // предмет из заголовка отсутствует в справочнике
	SchoolYear  = 2023
	DefaultCSRF = "csrf-0123456789"
	DefaultHash = "gsh-abcdef"
)

// Wednesday: "сейчас" для тестов: будний день с планом DayBasic.
var Wednesday = time.Date(2024, 1, 10, 7, 30, 0, 0, time.Local)

// Saturday: выходной, расписание звонков молчит.
var Saturday = time.Date(2024, 1, 13, 9, 0, 0, 0, time.Local)

// SnapshotJSON: аргумент userhome(...) в том виде, как его отдаёт портал:
// числа строками, пустые коллекции массивами, лишние поля.
const SnapshotJSON = `{
	"userid": "Ucitel1",
	"meninyDnes": "Dalibor",
	"meninyZajtra": "Vilma",
	"dbi": {
		"jeZUS": "0",
		"teachers": {
			"1": {"id": "1", "firstname": "Jana", "lastname": "Novakova", "short": "NJ", "gender": "F", "classroomid": "200", "isOut": false, "datefrom": "2015-09-01", "dateto": ""},
			"2": {"id": "2", "firstname": "Peter", "lastname": "Horvath", "short": "HP", "gender": "M", "classroomid": "", "isOut": "1", "datefrom": "", "dateto": ""},
			"x": {"id": "", "firstname": "Broken", "lastname": "Record", "short": "??"}
		},
		"classes": {
			"10": {"id": "10", "name": "1.A", "short": "1A", "grade": "1", "teacherid": "1", "teacher2id": "", "classroomid": "200"},
			"11": {"id": "11", "name": "2.B", "short": "2B", "grade": "2", "teacherid": "2", "classroomid": "201"}
		},
		"subjects": {
			"100": {"id": "100", "name": "Matematika", "short": "MAT"},
			"101": {"id": "101", "name": "Fyzika", "short": "FYZ"},
			"102": {"id": "102", "name": "Dejepis", "short": "DEJ"}
		},
		"classrooms": {
			"200": {"id": "200", "name": "Ucebna 1", "short": "U1"},
			"201": {"id": "201", "name": "Laboratorium", "short": "LAB"}
		},
		"students": {
			"1000": {"id": "1000", "classid": "10", "firstname": "Adam", "lastname": "Kovac", "parent1id": "2000", "parent2id": "", "parent3id": "", "gender": "M", "datefrom": "2023-09-01", "dateto": "", "numberinclass": "3"},
			"1001": {"id": "1001", "classid": "11", "firstname": "Eva", "lastname": "Mala", "parent1id": "", "gender": "F", "numberinclass": "x"}
		},
		"parents": []
	},
	"items": [
		{"timelineid": "501", "typ": "news", "user": "Ucitel1", "target_user": "*", "user_meno": "Jana Novakova", "vlastnik": "Ucitel1", "text": "Skolsky vylet", "data": "{}", "pocet_reakcii": "0", "reakcia_na": "", "timestamp": "2024-01-09 10:00:00", "cas_pridania": "2024-01-09 10:00:00", "cas_pridania_btc": "2024-01-09 09:00:00", "cas_udalosti": "0000-00-00 00:00:00"},
		{"timelineid": 502, "typ": "substitution", "user": "Ucitel2", "target_user": "Trieda10", "user_meno": "Peter Horvath", "vlastnik": "Ucitel2", "text": "Suplovanie", "data": {"date": "2024-01-11"}, "pocet_reakcii": 2, "timestamp": "2024-01-10 06:00:00", "cas_pridania": "", "cas_pridania_btc": "", "cas_udalosti": ""},
		{"timelineid": "503", "typ": "h_brandnewtype", "user": "*", "target_user": "", "user_meno": "", "vlastnik": "", "text": "", "pocet_reakcii": "0", "timestamp": "2024-01-10 06:05:00"},
		{"timelineid": "504", "typ": "sprava", "user": "Rodic2000", "target_user": "Ucitel1", "user_meno": "Rodic", "vlastnik": "Rodic2000", "text": "Dobry den", "pocet_reakcii": "1", "reakcia_na": "501", "timestamp": "2024-01-10 07:00:00"}
	],
	"dp": {
		"year": "2023",
		"dates": {
			"2024-01-10": {"tt_day": 2, "tt_week": 1, "plan": [
				{"type": "lesson", "date": "2024-01-10", "header": [{"item": {"subjectid": "100"}}], "subjectid": "100", "classids": ["10"], "teacherids": ["1"], "classroomids": ["200"], "starttime": "08:00", "endtime": "08:45", "ol_url": null},
				{"type": "period", "date": "2024-01-10", "header": [], "classids": ["10"], "starttime": "08:55", "endtime": "09:40"}
			]},
			"2024-01-11": {"tt_day": 3, "tt_week": 1, "plan": [
				{"type": "lesson", "header": [{"item": {"subjectid": "101"}}], "teacherids": ["1", "2", "99"], "classroomids": ["201", "999"], "starttime": "08:00", "endtime": "08:45"},
				{"type": "lesson", "header": [{"item": null}], "teacherids": ["1"], "starttime": "08:55", "endtime": "09:40"},
				{"type": "lesson", "header": [{"item": {"subjectid": "102"}}], "teacherids": ["2"], "starttime": "09:50", "endtime": "10:35", "ol_url": "https://meet.example.com/dej"},
				{"type": "lesson", "header": [{"item": {"subjectid": "100"}}], "teacherids": [], "starttime": "", "endtime": "11:30"},
				{"type": "lesson", "header": [{"item": {"subjectid": "100"}}], "classroomids": ["200"], "starttime": "10:45", "endtime": "11:30"}
			]},
			"2024-01-12": {"tt_day": 4, "tt_week": 1, "plan": [
				{"type": "lesson", "header": [{"item": {"subjectid": "404"}}], "starttime": "08:00", "endtime": "08:45"}
			]}
		}
	},
	"zvonenia": [
		{"name": "1", "starttime": "8:00", "endtime": "8:45"},
		{"name": "2", "starttime": "8:55", "endtime": "9:40"},
		{"name": "3", "starttime": "9:50", "endtime": "10:35"},
		{"name": "4", "starttime": "10:45", "endtime": "11:30"}
	]
}`

// LoginPage: страница входа с csrf-полем; пустой csrf — страница без поля.
func LoginPage(csrf string) string {
	if csrf == "" {
		return `<html><body><form action="/login/edubarLogin.php"></form></body></html>`
	}
	return `<html><body><form action="/login/edubarLogin.php" method="post">
<input type="hidden" name="csrfauth" value="` + csrf + `">
<input name="username"><input name="password" type="password">
</form></body></html>`
}

// HomePage: страница после входа: снимок в userhome(...) и gsechash.
// Пустые аргументы убирают соответствующий маркер.
func HomePage(snapshot, hash string) string {
	var b strings.Builder
	b.WriteString("<html><head><script>\n")
	if hash != "" {
		b.WriteString(`ASC.gsechash="` + hash + `";` + "\n")
	}
	b.WriteString("</script></head><body>\n<script>\n$j(document).ready(function() {\n")
	if snapshot != "" {
		b.WriteString("\tuserhome(" + snapshot + ", [], {});\n")
	}
	b.WriteString("});\n</script></body></html>")
	return b.String()
}

package dispatch

import "strings"

// schoolTemplates covers the school management source. The head-count
// template splits on whether the question asks for a per-class breakdown.
var schoolTemplates = []Template{
	{
		Match: func(q string) bool {
			return strings.Contains(q, "how many students") && contains(q, "class", "section")
		},
		Statement: `SELECT cs.class_number, cs.section,
       COUNT(DISTINCT se.student_id) as student_count
FROM sms_student_enrollments se
JOIN sms_class_section cs ON se.class_section_id = cs.class_section_id
WHERE se.status = 'active'
GROUP BY cs.class_number, cs.section
ORDER BY cs.class_number, cs.section`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "how many students")
		},
		Statement: "SELECT COUNT(*) as total_students FROM sms_students",
	},
	{
		Match: func(q string) bool {
			return contains(q, "list students", "show students")
		},
		Statement: `SELECT s.admission_no, s.name, s.gender, cs.class_number, cs.section, se.roll_no
FROM sms_students s
JOIN sms_student_enrollments se ON s.id = se.student_id
JOIN sms_class_section cs ON se.class_section_id = cs.class_section_id
WHERE se.status = 'active'
ORDER BY cs.class_number, cs.section, se.roll_no
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "teacher")
		},
		Statement: `SELECT staff_id, CONCAT(first_name, ' ', last_name) as name,
       role, department, phone, email
FROM sms_teachers
WHERE status = 'active'
ORDER BY first_name
LIMIT %d`,
	},
	{
		Match: func(q string) bool {
			return strings.Contains(q, "fee") && contains(q, "pending", "unpaid")
		},
		Statement: `SELECT s.admission_no, s.name, cs.class_number, cs.section,
       fs.month, fs.total_amount
FROM sms_students s
JOIN sms_student_enrollments se ON s.id = se.student_id
JOIN sms_class_section cs ON se.class_section_id = cs.class_section_id
JOIN fee_structures fs ON cs.class_section_id = fs.class_section_id
LEFT JOIN fee_payments fp ON s.id = fp.student_id AND fs.month = fp.month
WHERE fp.id IS NULL AND se.status = 'active'
LIMIT %d`,
	},
	{
		Match: func(q string) bool { return true },
		Statement: `SELECT 'school_erp School Database. Ask about: students, teachers, classes,
fees, attendance, marks, library' as info`,
	},
}

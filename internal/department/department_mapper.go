package department

import "go-employee/internal/employee"

func mapToDTO(dept Department, empls []employee.Employee) DepartmentDTO {
	dto := DepartmentDTO{
		DepartmentID: dept.ID,
		Name:         dept.Name,
		Employees:    make([]employee.EmployeeDTO, 0, len(empls)),
	}
	for _, e := range empls {
		ed := employee.MapToDTO(e)
		ed.Department = nil
		dto.Employees = append(dto.Employees, ed)
	}
	return dto
}

// mapToDTOs groups empls by department id. Employees of departments not in
// depts are ignored.
func mapToDTOs(depts []Department, empls []employee.Employee) []DepartmentDTO {
	byDept := make(map[int64][]employee.Employee, len(depts))
	for _, e := range empls {
		if e.DepartmentID == nil {
			continue
		}
		byDept[*e.DepartmentID] = append(byDept[*e.DepartmentID], e)
	}

	res := make([]DepartmentDTO, len(depts))
	for i, d := range depts {
		res[i] = mapToDTO(d, byDept[d.ID])
	}
	return res
}

func departmentIDs(depts []Department) []int64 {
	ids := make([]int64, len(depts))
	for i, d := range depts {
		ids[i] = d.ID
	}
	return ids
}

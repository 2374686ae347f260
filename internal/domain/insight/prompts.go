package insight

import "fmt"

const blueprintContext = "PG Management System with entities: Room, Resident, Fee_Record, Support_Ticket."

var components = []Component{
	{Name: "sql", Description: "MySQL CREATE TABLE statements for all 4 entities with Foreign Keys"},
	{Name: "entity", Description: "Java JPA Entity classes for Resident and SupportTicket with annotations"},
	{Name: "repo", Description: "Spring Data JPA Repository interfaces for ResidentRepository and TicketRepository"},
	{Name: "service", Description: "Service Layer classes (AdminService, ResidentService) with business logic methods"},
	{Name: "controller", Description: "Spring MVC RestControllers (AdminController, ResidentController) with mappings"},
}

func Components() []Component {
	result := make([]Component, len(components))
	copy(result, components)
	return result
}

func LookupComponent(name string) (Component, error) {
	for _, c := range components {
		if c.Name == name {
			return c, nil
		}
	}
	return Component{}, ErrUnknownComponent
}

func blueprintPrompt(component Component) string {
	return fmt.Sprintf(`You are a Senior Java Spring Boot Architect.
Generate a robust, production-ready code snippet for a PG Management System.

Context: %s
Requirement: Generate the %s.

Strictly follow this stack:
- Java 17+
- Spring Boot 3+
- Spring Data JPA
- MySQL syntax for SQL

Return ONLY the code block. No markdown backticks, no explanatory text.`, blueprintContext, component.Description)
}

func insightPrompt(dataContext string) string {
	return fmt.Sprintf(`You are an AI Facility Manager assistant.
Analyze the following data context and provide a brief, actionable insight (max 2 sentences).

Data Context: %s`, dataContext)
}

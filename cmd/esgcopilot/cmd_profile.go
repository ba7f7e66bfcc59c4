package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esgcopilot/internal/types"
)

var (
	profileName     string
	profileIndustry string
	profileSize     string
	profileLocation string
	profileYear     int
)

// profileCmd groups the company profile commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the reporting company profile",
	RunE:  profileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update company profile fields",
	Long: `Updates the company profile. Only the provided flags change; in
particular an invalid --size is rejected and leaves the stored size as is.`,
	RunE: profileSet,
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Company name")
	profileSetCmd.Flags().StringVar(&profileIndustry, "industry", "", "Industry sector")
	profileSetCmd.Flags().StringVar(&profileSize, "size", "", "Size class (Micro, Small, Medium)")
	profileSetCmd.Flags().StringVar(&profileLocation, "location", "", "Head office location")
	profileSetCmd.Flags().IntVar(&profileYear, "year", 0, "Reporting year")

	profileCmd.AddCommand(profileSetCmd)
}

func profileShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	s := currentStyles()
	company := a.store.Company()
	fmt.Println(s.Title.Render(company.Name))
	fmt.Printf("  Industry:        %s\n", company.Industry)
	fmt.Printf("  Size:            %s\n", company.Size)
	fmt.Printf("  Location:        %s\n", company.Location)
	fmt.Printf("  Reporting year:  %d\n", company.ReportingYear)
	return nil
}

func profileSet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	company := a.store.Company()
	if profileName != "" {
		company.Name = profileName
	}
	if profileIndustry != "" {
		company.Industry = profileIndustry
	}
	if profileSize != "" {
		size := types.CompanySize(profileSize)
		switch size {
		case types.SizeMicro, types.SizeSmall, types.SizeMedium:
			company.Size = size
		default:
			return fmt.Errorf("unknown size %q (use Micro, Small, or Medium)", profileSize)
		}
	}
	if profileLocation != "" {
		company.Location = profileLocation
	}
	if profileYear != 0 {
		company.ReportingYear = profileYear
	}

	a.store.UpdateCompany(company)
	fmt.Println("Profile updated.")
	return profileShow(cmd, args)
}
